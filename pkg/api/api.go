// Package api implements the REST API for evaluating and managing
// arithmetic expressions.
package api

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lemonberrylabs/arith/pkg/expr"
	"github.com/lemonberrylabs/arith/pkg/store"
	"github.com/lemonberrylabs/arith/pkg/types"
	"gopkg.in/yaml.v3"
)

// Server is the API server for the evaluator.
type Server struct {
	app   *fiber.App
	store *store.Store
}

// New creates a new API server.
func New(s *store.Store) *Server {
	srv := &Server{store: s}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	// Ad-hoc evaluation
	app.Post("/v1/evaluate", srv.evaluate)

	// Saved expressions
	app.Post("/v1/expressions", srv.createExpression)
	app.Get("/v1/expressions", srv.listExpressions)
	app.Get("/v1/expressions/:id", srv.getExpression)
	app.Patch("/v1/expressions/:id", srv.updateExpression)
	app.Delete("/v1/expressions/:id", srv.deleteExpression)
	app.Post("/v1/expressions/:id\\:evaluate", srv.evaluateExpression)

	// Evaluation history
	app.Get("/v1/evaluations", srv.listEvaluations)
	app.Get("/v1/evaluations/:name", srv.getEvaluation)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

// --- Evaluation Handlers ---

type evaluateRequest struct {
	Expression string `json:"expression"`
}

func (s *Server) evaluate(c *fiber.Ctx) error {
	var req evaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, fmt.Sprintf("invalid request body: %v", err))
	}
	if req.Expression == "" {
		return badRequest(c, "expression is required")
	}

	return s.runEvaluation(c, req.Expression)
}

func (s *Server) evaluateExpression(c *fiber.Ctx) error {
	e, err := s.store.GetExpression(c.Params("id"))
	if err != nil {
		return notFound(c, err.Error())
	}
	return s.runEvaluation(c, e.Source)
}

// runEvaluation evaluates source, records the outcome, and writes the
// response. Malformed expressions are a client error, not a server one.
func (s *Server) runEvaluation(c *fiber.Ctx, source string) error {
	res, evalErr := expr.EvaluateString(source)
	rec := s.store.RecordEvaluation(source, res.Value, res.Repr, evalErr)

	if evalErr != nil {
		var ee *types.EvalError
		if errors.As(evalErr, &ee) {
			return c.Status(400).JSON(fiber.Map{
				"error": fiber.Map{
					"code":       400,
					"message":    ee.Message,
					"status":     "INVALID_ARGUMENT",
					"tags":       ee.Tags,
					"position":   ee.Pos,
					"evaluation": rec.Name,
				},
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    500,
				"message": evalErr.Error(),
				"status":  "INTERNAL",
			},
		})
	}

	return c.JSON(fiber.Map{
		"expression": source,
		"value":      res.Value,
		"repr":       res.Repr,
		"evaluation": rec.Name,
	})
}

// --- Expression Handlers ---

type createExpressionRequest struct {
	Expression  string `json:"expression"`
	Description string `json:"description"`
}

func (s *Server) createExpression(c *fiber.Ctx) error {
	id := c.Query("expressionId")
	if id == "" {
		return badRequest(c, "expressionId query parameter is required")
	}
	if !validExpressionID.MatchString(id) || len(id) > 128 {
		return badRequest(c, fmt.Sprintf("invalid expression ID %q", id))
	}

	var req createExpressionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, fmt.Sprintf("invalid request body: %v", err))
	}
	if req.Expression == "" {
		return badRequest(c, "expression is required")
	}

	// Reject sources that do not parse; saved expressions are always valid.
	if _, err := expr.Parse(req.Expression); err != nil {
		return badRequest(c, fmt.Sprintf("expression does not parse: %v", err))
	}

	e, err := s.store.CreateExpression(id, req.Expression, req.Description)
	if err != nil {
		return c.Status(409).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    409,
				"message": err.Error(),
				"status":  "ALREADY_EXISTS",
			},
		})
	}

	return c.JSON(expressionToJSON(e))
}

func (s *Server) updateExpression(c *fiber.Ctx) error {
	var req createExpressionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, fmt.Sprintf("invalid request body: %v", err))
	}
	if req.Expression == "" {
		return badRequest(c, "expression is required")
	}

	if _, err := expr.Parse(req.Expression); err != nil {
		return badRequest(c, fmt.Sprintf("expression does not parse: %v", err))
	}

	e, err := s.store.UpdateExpression(c.Params("id"), req.Expression, req.Description)
	if err != nil {
		return notFound(c, err.Error())
	}
	return c.JSON(expressionToJSON(e))
}

func (s *Server) getExpression(c *fiber.Ctx) error {
	e, err := s.store.GetExpression(c.Params("id"))
	if err != nil {
		return notFound(c, err.Error())
	}
	return c.JSON(expressionToJSON(e))
}

func (s *Server) listExpressions(c *fiber.Ctx) error {
	expressions := s.store.ListExpressions()
	out := make([]fiber.Map, 0, len(expressions))
	for _, e := range expressions {
		out = append(out, expressionToJSON(e))
	}
	return c.JSON(fiber.Map{"expressions": out})
}

func (s *Server) deleteExpression(c *fiber.Ctx) error {
	if err := s.store.DeleteExpression(c.Params("id")); err != nil {
		return notFound(c, err.Error())
	}
	return c.JSON(fiber.Map{})
}

// --- Evaluation History Handlers ---

func (s *Server) listEvaluations(c *fiber.Ctx) error {
	limit := c.QueryInt("pageSize", 50)
	evaluations := s.store.ListEvaluations(limit)
	out := make([]fiber.Map, 0, len(evaluations))
	for _, e := range evaluations {
		out = append(out, evaluationToJSON(e))
	}
	return c.JSON(fiber.Map{"evaluations": out})
}

func (s *Server) getEvaluation(c *fiber.Ctx) error {
	e, err := s.store.GetEvaluation(c.Params("name"))
	if err != nil {
		return notFound(c, err.Error())
	}
	return c.JSON(evaluationToJSON(e))
}

// --- Directory Loading ---

var validExpressionID = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

type expressionFile struct {
	Expression  string `yaml:"expression"`
	Description string `yaml:"description"`
}

// LoadDir loads all .yaml and .yml expression files from the given directory
// and saves them as named expressions. File name (sans extension) becomes the
// expression ID.
func (s *Server) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading expressions directory: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		base := strings.TrimSuffix(name, ext)
		id := strings.ToLower(base)

		if id != base {
			log.Printf("Warning: lowercased expression ID %q (from file %q)", id, name)
		}

		if !validExpressionID.MatchString(id) || len(id) > 128 {
			log.Printf("Warning: skipping file %q - invalid expression ID %q", name, id)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("Warning: could not read %q: %v", name, err)
			continue
		}

		var ef expressionFile
		if err := yaml.Unmarshal(data, &ef); err != nil {
			log.Printf("Warning: could not parse %q: %v", name, err)
			continue
		}
		if ef.Expression == "" {
			log.Printf("Warning: skipping %q - no expression field", name)
			continue
		}

		if _, err := expr.Parse(ef.Expression); err != nil {
			log.Printf("Warning: expression in %q does not parse: %v", name, err)
			continue
		}

		if _, err := s.store.CreateExpression(id, ef.Expression, ef.Description); err != nil {
			log.Printf("Warning: could not save %q: %v", name, err)
			continue
		}
		loaded++
		log.Printf("Loaded expression %q from %s", id, name)
	}

	log.Printf("Loaded %d expression(s) from %s", loaded, dir)
	return nil
}

// --- Helpers ---

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(400).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    400,
			"message": msg,
			"status":  "INVALID_ARGUMENT",
		},
	})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(404).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    404,
			"message": msg,
			"status":  "NOT_FOUND",
		},
	})
}

func expressionToJSON(e *store.Expression) fiber.Map {
	return fiber.Map{
		"id":          e.ID,
		"expression":  e.Source,
		"description": e.Description,
		"createTime":  e.CreateTime.Format(time.RFC3339),
		"updateTime":  e.UpdateTime.Format(time.RFC3339),
	}
}

func evaluationToJSON(e *store.Evaluation) fiber.Map {
	out := fiber.Map{
		"name":       e.Name,
		"expression": e.Source,
		"state":      e.State,
		"createTime": e.CreateTime.Format(time.RFC3339),
	}
	if e.State == store.EvaluationSucceeded {
		out["value"] = e.Value
		out["repr"] = e.Repr
	}
	if e.Error != "" {
		out["error"] = e.Error
	}
	return out
}
