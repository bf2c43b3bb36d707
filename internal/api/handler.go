package api

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-analyzer/internal/analyzer"
	"github.com/insightdelivered/statement-analyzer/internal/ingest"
	"github.com/insightdelivered/statement-analyzer/internal/logger"
	"github.com/insightdelivered/statement-analyzer/internal/models"
	"github.com/insightdelivered/statement-analyzer/internal/writer"
)

const Version = "2.0.0"

// AnalyzeResponse is the JSON response from the /api/analyze endpoint.
type AnalyzeResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Summary      *models.Summary      `json:"summary,omitempty"`
	Transactions []models.LedgerEntry `json:"transactions"`
	Diagnostics  []models.Diagnostic  `json:"diagnostics,omitempty"`
	Count        int                  `json:"count"`
	Version      string               `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Analyzer  *analyzer.Analyzer
	StaticDir string
	Log       zerolog.Logger
}

func NewHandler(a *analyzer.Analyzer, staticDir string, log zerolog.Logger) *Handler {
	return &Handler{Analyzer: a, StaticDir: staticDir, Log: log}
}

// NewApp builds the fiber app with middleware and routes. bodyLimit is the
// upload limit in bytes.
func NewApp(h *Handler, bodyLimit int) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "statement-analyzer " + Version,
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(h.requestLogger)
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", h.HandleHealth)
	api.Post("/analyze", h.HandleAnalyze)

	// Serve the web UI, with index.html for client-side routes.
	if h.StaticDir != "" {
		app.Static("/", h.StaticDir)
		app.Get("/*", func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/api/") {
				return fiber.ErrNotFound
			}
			return c.SendFile(filepath.Join(h.StaticDir, "index.html"))
		})
	}
}

// requestLogger logs one line per request and hands a request-scoped
// logger to the handlers through the user context.
func (h *Handler) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	reqID := c.GetRespHeader(fiber.HeaderXRequestID)
	reqLog := h.Log.With().Str("request_id", reqID).Logger()
	c.SetUserContext(logger.WithContext(c.UserContext(), reqLog))

	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	} else if err != nil {
		status = fiber.StatusInternalServerError
	}
	reqLog.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Str("remote_addr", c.IP()).
		Msg("HTTP request")
	return err
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleAnalyze runs the pipeline on an uploaded statement. The optional
// "format" field selects a JSON body (default), a CSV ledger or an XLSX
// report.
func (h *Handler) HandleAnalyze(c *fiber.Ctx) error {
	log := logger.FromContext(c.UserContext())

	header, err := c.FormFile("statement_file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'statement_file'.")
	}
	if header.Filename == "" {
		return writeError(c, fiber.StatusBadRequest, "No file selected.")
	}

	format := strings.ToLower(c.FormValue("format", "json"))
	if format != "json" && format != "csv" && format != "xlsx" {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown format %q. Use json, csv or xlsx.", format))
	}

	file, err := header.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "Failed to open uploaded file.")
	}
	defer file.Close()

	log.Info().Str("file", header.Filename).Int64("size", header.Size).Str("format", format).Msg("Processing uploaded statement")

	result, err := h.Analyzer.AnalyzeFile(header.Filename, file)
	if err != nil {
		var se *models.StatementError
		switch {
		case errors.Is(err, ingest.ErrUnsupportedFormat) && errors.As(err, &se):
			return writeError(c, fiber.StatusUnsupportedMediaType, se.Msg)
		case errors.As(err, &se):
			return writeError(c, fiber.StatusUnprocessableEntity, se.Msg)
		default:
			log.Error().Err(err).Msg("Analysis failed")
			return writeError(c, fiber.StatusInternalServerError, "Internal server error.")
		}
	}

	if format != "json" {
		return h.sendReport(c, format, header.Filename, result)
	}

	txns := result.Transactions
	if txns == nil {
		txns = []models.LedgerEntry{}
	}
	return c.JSON(AnalyzeResponse{
		Success:      true,
		Summary:      &result.Summary,
		Transactions: txns,
		Diagnostics:  result.Diagnostics,
		Count:        len(txns),
		Version:      Version,
	})
}

func (h *Handler) sendReport(c *fiber.Ctx, format, filename string, result *models.Result) error {
	w, err := writer.ForFormat(format, c.FormValue("summary") == "true")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	var buf bytes.Buffer
	if err := w.Write(&buf, result); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("Report generation failed: %v", err))
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	c.Attachment(base + "-analysis." + format)
	return c.Send(buf.Bytes())
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(AnalyzeResponse{
		Success: false,
		Error:   msg,
	})
}

// errorHandler renders errors that escape handlers (404, body limit,
// recovered panics) in the same JSON shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error."
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return writeError(c, code, msg)
}
