package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/cvstudio/api/http/presenter"
	"github.com/artem13815/cvstudio/pkg/render"
)

type ExportHandler struct {
	svc render.UseCase
	log *zap.Logger
}

func NewExportHandler(svc render.UseCase, log *zap.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, log: log}
}

// ExportRequest is the body of /export-pdf and /preview.
type ExportRequest struct {
	CV       any    `json:"cv" swaggertype:"object"`
	Template string `json:"template" example:"simple"`
	Title    string `json:"title" example:"Mon CV"`
	Language string `json:"language" example:"fr"`
}

// bind decodes the request body. A non-empty detail means the request is
// invalid.
func bind(c *fiber.Ctx) (render.Request, string) {
	var req ExportRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return render.Request{}, "invalid JSON"
	}
	if _, ok := req.CV.(map[string]any); !ok {
		return render.Request{}, "cv object is required"
	}
	return render.Request{CV: req.CV, Template: req.Template, Title: req.Title, Language: req.Language}, ""
}

// ExportPDF рендерит CV выбранным шаблоном в PDF.
// @Summary Export a CV to PDF
// @Tags    Export
// @Accept  json
// @Produce application/pdf
// @Param   body body ExportRequest true "CV, template and title"
// @Success 200 {file} binary
// @Failure 400 {object} presenter.ErrorResponse "Invalid JSON, missing cv or unknown template"
// @Failure 500 {object} presenter.ErrorResponse "PDF export failed"
// @Router  /export-pdf [post]
func (h *ExportHandler) ExportPDF(c *fiber.Ctx) error {
	req, detail := bind(c)
	if detail != "" {
		return presenter.Error(c, http.StatusBadRequest, detail)
	}
	file, err := h.svc.Export(c.UserContext(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, render.ContentDisposition(file.Filename))
	return c.Status(http.StatusOK).Send(file.Data)
}

// Preview возвращает HTML-фрагмент для предпросмотра.
// @Summary Preview a CV as HTML
// @Tags    Export
// @Accept  json
// @Produce html
// @Param   body body ExportRequest true "CV, template and title"
// @Success 200 {string} string "HTML fragment"
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /preview [post]
func (h *ExportHandler) Preview(c *fiber.Ctx) error {
	req, detail := bind(c)
	if detail != "" {
		return presenter.Error(c, http.StatusBadRequest, detail)
	}
	out, err := h.svc.Preview(c.UserContext(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	c.Type("html", "utf-8")
	return c.Status(http.StatusOK).SendString(out)
}

// Templates возвращает каталог шаблонов.
// @Summary List templates
// @Tags    Export
// @Produce json
// @Success 200 {array} render.Template
// @Router  /templates [get]
func (h *ExportHandler) Templates(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, h.svc.Templates())
}
