package wizard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio-backend/internal/extract"
	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/shared/metrics"
	"portfolio-backend/internal/shared/server/middleware"
	"portfolio-backend/internal/shared/server/respond"
	"portfolio-backend/internal/shared/storage/object"
	"portfolio-backend/internal/shared/telemetry"
	"portfolio-backend/internal/templates"
	"portfolio-backend/internal/users"
)

// maxUploadBytes caps resume uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// Handler drives the portfolio wizard: upload a resume, pick a template,
// preview and download the generated site.
type Handler struct {
	Pipeline  *portfolio.Pipeline
	Sessions  session.Store
	Users     *users.Service
	Templates templates.Repo
	Renderer  *templates.Renderer
	Exporter  *templates.PDFExporter
	Requests  Repo
	Resumes   object.ObjectStore
}

func (h *Handler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/templates", h.listTemplates)
	public.GET("/portfolio/preview/:slug", h.preview)
	public.GET("/portfolio/download/:slug", h.downloadZip)
	public.GET("/portfolio/download/:slug/pdf", h.downloadPDF)
	authed.POST("/portfolio/resume", h.uploadResume)
}

func (h *Handler) uploadResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "resume must be 10 MB or smaller", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "invalid_request", "resume file is required", nil)
		return
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(header.Filename)) != ".pdf" {
		respond.Error(c, http.StatusBadRequest, "invalid_file_type", "please upload a PDF file", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "resume must be 10 MB or smaller", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to read upload", nil)
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserIDFromContext(c)

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "account not found; please sign in again", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}

	staff := middleware.IsStaffFromContext(c)
	userKey := user.GeminiAPIKey
	if userKey == "" && user.HasGeneratedPortfolio && !staff {
		respond.Error(c, http.StatusForbidden, "free_limit_reached",
			"your free generation has been used; add your own API key in your profile to continue", nil)
		return
	}

	// Archival is best effort; a storage hiccup must not block generation.
	resumeKey := ""
	if h.Resumes != nil {
		key, _, _, saveErr := h.Resumes.Save(ctx, userID, header.Filename, bytes.NewReader(data))
		if saveErr != nil {
			telemetry.Warn("wizard.resume_archive_failed", map[string]any{
				"user_id": userID,
				"error":   saveErr.Error(),
			})
		} else {
			resumeKey = key
		}
	}

	metrics.IncGenerationStarted()
	started := time.Now()
	rec, err := h.Pipeline.Run(ctx, data, userKey)
	metrics.ObserveGenerationDurationMs(float64(time.Since(started) / time.Millisecond))
	if err != nil {
		metrics.IncGenerationFailed()
		respondPipelineError(c, err)
		return
	}
	metrics.IncGenerationCompleted()

	sessionID := middleware.SessionIDFromContext(c)
	if err := h.Sessions.SaveRecord(ctx, sessionID, rec); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store generated portfolio", nil)
		return
	}

	if userKey == "" && !staff && !user.HasGeneratedPortfolio {
		if err := h.Users.MarkPortfolioGenerated(ctx, userID); err != nil {
			telemetry.Warn("wizard.mark_generated_failed", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}

	if h.Requests != nil {
		insertErr := h.Requests.Insert(ctx, Request{
			ID:        uuid.NewString(),
			UserID:    userID,
			SessionID: sessionID,
			ResumeKey: resumeKey,
			Record:    rec,
			CreatedAt: time.Now().UTC(),
		})
		if insertErr != nil {
			telemetry.Warn("wizard.request_record_failed", map[string]any{
				"user_id": userID,
				"error":   insertErr.Error(),
			})
		}
	}

	respond.JSON(c, http.StatusOK, gin.H{"record": rec})
}

func (h *Handler) listTemplates(c *gin.Context) {
	list, err := h.Templates.ListActive(c.Request.Context())
	if err != nil {
		telemetry.Warn("wizard.templates_list_failed", map[string]any{"error": err.Error()})
		list = nil
	}
	if len(list) == 0 {
		// Keep the wizard usable before the database is seeded.
		list = templates.Defaults()
	}
	respond.JSON(c, http.StatusOK, gin.H{"templates": list})
}

func (h *Handler) preview(c *gin.Context) {
	rec, slug, ok := h.sessionRecord(c)
	if !ok {
		return
	}

	html, err := h.Renderer.Render(slug, rec)
	if err != nil {
		if errors.Is(err, templates.ErrTemplateFilesMissing) {
			respond.Error(c, http.StatusNotFound, "not_found", "unknown template", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render portfolio", nil)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (h *Handler) downloadZip(c *gin.Context) {
	rec, slug, ok := h.sessionRecord(c)
	if !ok {
		return
	}

	bundle, err := h.Renderer.Bundle(slug, rec)
	if err != nil {
		if errors.Is(err, templates.ErrTemplateFilesMissing) {
			respond.Error(c, http.StatusNotFound, "not_found", "unknown template", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build download", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=portfolio-%s.zip", slug))
	c.Data(http.StatusOK, "application/zip", bundle)
}

func (h *Handler) downloadPDF(c *gin.Context) {
	rec, slug, ok := h.sessionRecord(c)
	if !ok {
		return
	}

	html, err := h.Renderer.Render(slug, rec)
	if err != nil {
		if errors.Is(err, templates.ErrTemplateFilesMissing) {
			respond.Error(c, http.StatusNotFound, "not_found", "unknown template", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render portfolio", nil)
		return
	}

	if h.Exporter == nil {
		respond.Error(c, http.StatusServiceUnavailable, "export_unavailable", "PDF export is not available", nil)
		return
	}

	pdf, err := h.Exporter.ExportPDF(c.Request.Context(), html)
	if err != nil {
		telemetry.Error("wizard.pdf_export_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "export_failed", "failed to export PDF", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=portfolio-%s.pdf", slug))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// sessionRecord resolves the wizard state shared by the preview and download
// steps: a generated record in the session plus a valid template slug.
func (h *Handler) sessionRecord(c *gin.Context) (portfolio.Record, string, bool) {
	slug := c.Param("slug")
	c.Set("templateSlug", slug)
	if _, err := h.Templates.GetBySlug(c.Request.Context(), slug); err != nil {
		if errors.Is(err, templates.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "unknown template", nil)
			return portfolio.Record{}, "", false
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load template", nil)
		return portfolio.Record{}, "", false
	}

	sessionID := middleware.SessionIDFromContext(c)
	rec, ok, err := h.Sessions.GetRecord(c.Request.Context(), sessionID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load session", nil)
		return portfolio.Record{}, "", false
	}
	if !ok {
		respond.Error(c, http.StatusNotFound, "no_portfolio", "no generated portfolio in this session; upload a resume first", nil)
		return portfolio.Record{}, "", false
	}
	return rec, slug, true
}

// respondPipelineError maps each generation failure kind to one actionable
// client message.
func respondPipelineError(c *gin.Context, err error) {
	var extractErr *extract.Error
	var credErr *portfolio.CredentialError
	var quotaErr *portfolio.QuotaError
	var parseErr *portfolio.ParseError
	var upstreamErr *portfolio.UpstreamError

	switch {
	case errors.As(err, &extractErr):
		respond.Error(c, http.StatusBadRequest, "bad_pdf",
			"could not read the PDF; please upload a valid, uncorrupted file", nil)
	case errors.Is(err, portfolio.ErrEmptyDocument):
		respond.Error(c, http.StatusBadRequest, "empty_document",
			"no text could be found in the document; scanned images are not supported", nil)
	case errors.As(err, &credErr):
		if credErr.UserSupplied {
			respond.Error(c, http.StatusBadRequest, "invalid_api_key",
				"your API key was rejected; check the key saved in your profile", nil)
			return
		}
		respond.Error(c, http.StatusServiceUnavailable, "service_unavailable",
			"the generation service is not available right now; please try again later", nil)
	case errors.As(err, &quotaErr):
		respond.Error(c, http.StatusTooManyRequests, "quota_exceeded",
			"the generation service is busy; please try again in a few minutes", nil)
	case errors.As(err, &parseErr):
		respond.Error(c, http.StatusBadGateway, "generation_failed",
			"the generator returned an unusable response; please try again", nil)
	case errors.As(err, &upstreamErr):
		respond.Error(c, http.StatusBadGateway, "service_unavailable",
			"the generation service failed; please try again later", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "portfolio generation failed", nil)
	}
}
