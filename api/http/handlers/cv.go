package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/cvstudio/api/http/presenter"
	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/parsing"
)

const defaultListLimit = 50

type CVHandler struct {
	parser   parsing.UseCase
	cvs      cv.UseCase
	log      *zap.Logger
	maxBytes int64
}

func NewCVHandler(parser parsing.UseCase, cvs cv.UseCase, log *zap.Logger, maxBytes int64) *CVHandler {
	if maxBytes <= 0 {
		maxBytes = 15 << 20
	}
	return &CVHandler{parser: parser, cvs: cvs, log: log, maxBytes: maxBytes}
}

// SaveRequest is the body of POST /save-cv.
type SaveRequest struct {
	Title    string `json:"title"`
	Source   string `json:"source"`
	Language string `json:"language"`
	RawText  string `json:"raw_text"`
	CV       any    `json:"cv" swaggertype:"object"`
}

// ParseCV извлекает текст из загруженного файла и структурирует его.
// @Summary Parse an uploaded CV
// @Description Accepts PDF, DOCX, DOC or an image, extracts the text and returns the structured CV.
// @Tags    CV
// @Accept  multipart/form-data
// @Produce json
// @Param   file          formData file   true  "CV document (PDF, DOCX, DOC, JPG, PNG)"
// @Param   language_hint formData string false "Language of the document, e.g. fr or en"
// @Success 200 {object} parsing.Result
// @Failure 400 {object} presenter.ErrorResponse "Missing, empty or unsupported file"
// @Failure 422 {object} presenter.ParseErrorResponse "No readable text or schema mismatch"
// @Router  /parse-cv [post]
func (h *CVHandler) ParseCV(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required")
	}
	if fh.Size == 0 {
		return presenter.Error(c, http.StatusBadRequest, "uploaded file is empty")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	res, err := h.parser.Parse(c.UserContext(), parsing.Input{
		Filename:     fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		Data:         data,
		LanguageHint: c.FormValue("language_hint"),
	})
	if err != nil {
		var failure *parsing.Failure
		if errors.As(err, &failure) {
			return presenter.JSON(c, http.StatusUnprocessableEntity, presenter.ParseErrorResponse{
				Detail:        detailOf(failure.Err),
				DebugRawText:  failure.RawText,
				DebugSections: failure.DebugSections,
			})
		}
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// SaveCV сохраняет CV; строки не обновляются.
// @Summary Save a CV
// @Tags    CV
// @Accept  json
// @Produce json
// @Param   body body SaveRequest true "CV to store"
// @Success 200 {object} cv.Summary
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /save-cv [post]
func (h *CVHandler) SaveCV(c *fiber.Ctx) error {
	var req SaveRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON")
	}
	saved, err := h.cvs.Save(c.UserContext(), cv.SaveInput{
		Title:    req.Title,
		Source:   req.Source,
		Language: req.Language,
		RawText:  req.RawText,
		CV:       req.CV,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	h.log.Info("cv saved", zap.String("cv_id", saved.ID.String()), zap.String("source", saved.Source))
	return presenter.JSON(c, http.StatusOK, saved.Summarize())
}

// ListCVs возвращает сохранённые CV, новые первыми.
// @Summary List saved CVs
// @Tags    CV
// @Produce json
// @Param   limit  query int false "Page size (1..200)"
// @Param   offset query int false "Offset"
// @Success 200 {array} cv.Summary
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /cv-list [get]
func (h *CVHandler) ListCVs(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, defaultListLimit)
	items, err := h.cvs.List(c.UserContext(), limit, offset)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// GetCV возвращает сохранённое CV целиком.
// @Summary Get a saved CV
// @Tags    CV
// @Produce json
// @Param   id path string true "CV id"
// @Success 200 {object} cv.Saved
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cv/{id} [get]
func (h *CVHandler) GetCV(c *fiber.Ctx) error {
	saved, err := h.cvs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, saved)
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
