package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/artem13815/cvstudio/pkg/client"
	"github.com/artem13815/cvstudio/pkg/editor"
	"github.com/artem13815/cvstudio/pkg/render"
)

const (
	defaultServer  = "http://localhost:8080"
	defaultTimeout = 2 * time.Minute
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	server := os.Getenv("CVSTUDIO_URL")
	if server == "" {
		server = defaultServer
	}
	timeout := defaultTimeout
	if v := os.Getenv("CVSTUDIO_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid CVSTUDIO_TIMEOUT %q: %v\n", v, err)
			os.Exit(1)
		}
		timeout = d
	}
	api := client.New(server).WithHTTPClient(&http.Client{Timeout: timeout})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "parse":
		err = handleParse(ctx, api, os.Args[2:])
	case "save":
		err = handleSave(ctx, api, os.Args[2:])
	case "list":
		err = handleList(ctx, api)
	case "get":
		err = handleGet(ctx, api, os.Args[2:])
	case "export":
		err = handleExport(ctx, api, os.Args[2:])
	case "templates":
		err = handleTemplates(ctx, api)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("cvctl: command line client for cvstudio")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  cvctl parse <file> [lang]                  Parse a CV and print the structured JSON")
	fmt.Println("  cvctl save <file> [title]                  Parse a CV and save it")
	fmt.Println("  cvctl list                                 List saved CVs")
	fmt.Println("  cvctl get <id>                             Print a saved CV")
	fmt.Println("  cvctl export <id> <template> <out.pdf>     Export a saved CV to PDF")
	fmt.Println("  cvctl templates                            List templates")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  CVSTUDIO_URL                               Server address (default " + defaultServer + ")")
	fmt.Println("  CVSTUDIO_TIMEOUT                           Per-request timeout (default " + defaultTimeout.String() + ")")
}

func handleParse(ctx context.Context, api *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cvctl parse <file> [lang]")
	}
	lang := ""
	if len(args) > 1 {
		lang = args[1]
	}
	res, err := parseFile(ctx, api, args[0], lang)
	if err != nil {
		return err
	}
	return printJSON(res)
}

// handleSave runs the same path as the web editor: parse, open a session,
// then save what the session holds.
func handleSave(ctx context.Context, api *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cvctl save <file> [title]")
	}
	res, err := parseFile(ctx, api, args[0], "")
	if err != nil {
		return err
	}
	title := ""
	if len(args) > 1 {
		title = args[1]
	}
	s, err := newSession(editor.Document{
		Title:    title,
		Source:   res.Source,
		Language: res.Language,
		RawText:  res.RawText,
		CV:       res.CV,
	})
	if err != nil {
		return err
	}
	saved, err := api.Save(ctx, s.SaveRequest())
	if err != nil {
		return err
	}
	fmt.Printf("✓ Saved %q as %s\n", saved.Title, saved.ID)
	return nil
}

func handleList(ctx context.Context, api *client.Client) error {
	items, err := api.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No saved CVs")
		return nil
	}
	for _, it := range items {
		fmt.Printf("%s  %-6s  %-3s  %s  %s\n", it.ID, it.Source, it.Language, it.CreatedAt.Format(time.DateTime), it.Title)
	}
	return nil
}

func handleGet(ctx context.Context, api *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cvctl get <id>")
	}
	saved, err := api.Get(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(saved)
}

func handleExport(ctx context.Context, api *client.Client, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: cvctl export <id> <template> <out.pdf>")
	}
	saved, err := api.Get(ctx, args[0])
	if err != nil {
		return err
	}
	s, err := newSession(editor.Document{
		Title:    saved.Title,
		Template: args[1],
		Source:   saved.Source,
		Language: saved.Language,
		RawText:  saved.RawText,
		CV:       saved.CV,
	})
	if err != nil {
		return err
	}
	data, err := api.ExportPDF(ctx, s.ExportRequest())
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[2], data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", args[2], err)
	}
	fmt.Printf("✓ Exported %s (%d bytes)\n", args[2], len(data))
	return nil
}

func handleTemplates(ctx context.Context, api *client.Client) error {
	list, err := api.Templates(ctx)
	if err != nil {
		return err
	}
	for _, t := range list {
		fmt.Printf("%-10s %-8s %s\n", t.ID, t.Layout, t.Name)
	}
	return nil
}

func parseFile(ctx context.Context, api *client.Client, path, lang string) (client.ParseResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return client.ParseResponse{}, fmt.Errorf("read %s: %w", path, err)
	}
	return api.Parse(ctx, filepath.Base(path), data, lang)
}

func newSession(doc editor.Document) (*editor.Session, error) {
	catalog, err := render.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	html, err := render.NewHTML(catalog)
	if err != nil {
		return nil, err
	}
	return editor.NewSession(html, doc)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
