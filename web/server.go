// ABOUTME: Web server with the sheets JSON API and embedded HTML templates
// ABOUTME: Serves /api/sheets, the company list, and per-company detail pages
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/rollup"
)

//go:embed templates/*
var templatesFS embed.FS

// fetchFailedMessage is the only error detail exposed to API clients.
const fetchFailedMessage = "Failed to fetch data from sheets"

// DataSource produces a fresh payload per call. *pipeline.Pipeline
// satisfies it.
type DataSource interface {
	Run(ctx context.Context) (*models.Payload, error)
	FetchRaw(ctx context.Context) (models.RawPayload, error)
}

type Server struct {
	data      DataSource
	templates *template.Template
	logger    *log.Logger
}

func NewServer(data DataSource, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	funcMap := template.FuncMap{
		"money": rollup.FormatCents,
		"date":  rollup.FormatDate,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		data:      data,
		templates: tmpl,
		logger:    logger.WithPrefix("web"),
	}, nil
}

// Handler builds the gin router.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(s.templates)

	api := r.Group("/api", corsHeaders())
	api.OPTIONS("/sheets", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	api.GET("/sheets", s.handleSheets)

	r.GET("/", s.handleCompanies)
	r.GET("/companies/:id", s.handleCompany)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down web server: %w", err)
		}
		return nil
	}
}

func corsHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Content-Type", "application/json")
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start))
	}
}

func (s *Server) handleSheets(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("debug") == "true" {
		raw, err := s.data.FetchRaw(ctx)
		if err != nil {
			s.logger.Error("debug fetch failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": fetchFailedMessage})
			return
		}
		c.IndentedJSON(http.StatusOK, raw)
		return
	}

	payload, err := s.data.Run(ctx)
	if err != nil {
		s.logger.Error("fetch failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fetchFailedMessage})
		return
	}
	c.JSON(http.StatusOK, payload)
}

type companiesPage struct {
	Title           string
	ContentTemplate string
	Totals          rollup.Totals
	Companies       []models.Company
	Query           string
	Sort            string
	Dir             string
}

func (s *Server) handleCompanies(c *gin.Context) {
	field, err := rollup.ParseSortField(c.Query("sort"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	ascending, err := rollup.ParseDirection(c.Query("dir"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	payload, err := s.data.Run(c.Request.Context())
	if err != nil {
		s.logger.Error("fetch failed", "err", err)
		c.String(http.StatusInternalServerError, fetchFailedMessage)
		return
	}

	dir := "desc"
	if ascending {
		dir = "asc"
	}
	query := c.Query("q")

	s.render(c, http.StatusOK, companiesPage{
		Title:           "Companies",
		ContentTemplate: "companies-content",
		Totals:          rollup.Summarize(payload),
		Companies: rollup.FilterCompanies(payload.Companies, rollup.ListOptions{
			Query:     query,
			SortField: field,
			Ascending: ascending,
		}),
		Query: query,
		Sort:  string(field),
		Dir:   dir,
	})
}

type companyPage struct {
	Title           string
	ContentTemplate string
	Detail          *rollup.CompanyDetail
}

func (s *Server) handleCompany(c *gin.Context) {
	payload, err := s.data.Run(c.Request.Context())
	if err != nil {
		s.logger.Error("fetch failed", "err", err)
		c.String(http.StatusInternalServerError, fetchFailedMessage)
		return
	}

	detail, ok := rollup.DetailFor(payload, c.Param("id"))
	if !ok {
		c.String(http.StatusNotFound, "company not found")
		return
	}

	s.render(c, http.StatusOK, companyPage{
		Title:           detail.Company.Name,
		ContentTemplate: "company-content",
		Detail:          detail,
	})
}

func (s *Server) render(c *gin.Context, status int, data any) {
	// layout.html picks the content block named by ContentTemplate
	c.HTML(status, "layout.html", data)
}
