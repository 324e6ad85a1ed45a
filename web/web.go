// Package web provides the embedded web UI for the evaluator.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lemonberrylabs/arith/pkg/expr"
	"github.com/lemonberrylabs/arith/pkg/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the web UI pages.
type Handler struct {
	store   *store.Store
	funcMap template.FuncMap
}

// pageData wraps all page-specific data with common fields.
type pageData struct {
	NavActive string
	Data      interface{}
}

// New creates a new web UI handler.
func New(s *store.Store) *Handler {
	return &Handler{
		store: s,
		funcMap: template.FuncMap{
			"formatTime": formatTime,
			"timeAgo":    timeAgo,
			"stateClass": stateClass,
			"truncate":   truncate,
		},
	}
}

func (h *Handler) render(c *fiber.Ctx, page string, navActive string, data interface{}) error {
	// Parse templates fresh each time for the page-specific template
	tmpl := template.Must(
		template.New("").Funcs(h.funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+page),
	)

	pd := pageData{
		NavActive: navActive,
		Data:      data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, page, pd); err != nil {
		return c.Status(500).SendString(fmt.Sprintf("template error: %v", err))
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(buf.Bytes())
}

// Register adds web UI routes to the Fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/ui", h.dashboard)
	app.Post("/ui/evaluate", h.evaluateForm)
	app.Get("/ui/expressions", h.expressionList)

	// Redirect root to UI
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/ui")
	})
}

// --- Page Data Types ---

type dashboardContent struct {
	Input          string
	Value          int64
	Repr           string
	ErrorMsg       string
	HasResult      bool
	Expressions    []*store.Expression
	RecentEvals    []*store.Evaluation
	SucceededCount int
	FailedCount    int
}

type expressionListContent struct {
	Expressions []*store.Expression
}

// --- Page Handlers ---

func (h *Handler) dashboard(c *fiber.Ctx) error {
	return h.render(c, "dashboard.html", "dashboard", h.dashboardContent("", nil))
}

func (h *Handler) evaluateForm(c *fiber.Ctx) error {
	input := c.FormValue("expression")
	if input == "" {
		return h.render(c, "dashboard.html", "dashboard", h.dashboardContent("", nil))
	}

	res, err := expr.EvaluateString(input)
	h.store.RecordEvaluation(input, res.Value, res.Repr, err)

	content := h.dashboardContent(input, err)
	if err == nil {
		content.HasResult = true
		content.Value = res.Value
		content.Repr = res.Repr
	}
	return h.render(c, "dashboard.html", "dashboard", content)
}

func (h *Handler) expressionList(c *fiber.Ctx) error {
	return h.render(c, "expression_list.html", "expressions", expressionListContent{
		Expressions: h.store.ListExpressions(),
	})
}

func (h *Handler) dashboardContent(input string, evalErr error) dashboardContent {
	evals := h.store.ListEvaluations(0)
	var succeeded, failed int
	for _, e := range evals {
		switch e.State {
		case store.EvaluationSucceeded:
			succeeded++
		case store.EvaluationFailed:
			failed++
		}
	}

	recent := evals
	if len(recent) > 10 {
		recent = recent[:10]
	}

	content := dashboardContent{
		Input:          input,
		Expressions:    h.store.ListExpressions(),
		RecentEvals:    recent,
		SucceededCount: succeeded,
		FailedCount:    failed,
	}
	if evalErr != nil {
		content.ErrorMsg = evalErr.Error()
	}
	return content
}

// --- Template Helpers ---

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func stateClass(state store.EvaluationState) string {
	switch state {
	case store.EvaluationSucceeded:
		return "state-succeeded"
	case store.EvaluationFailed:
		return "state-failed"
	default:
		return ""
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
