// Package handler wires the registration endpoints to the registration
// service. It owns transport concerns only; validation and uniqueness live
// below it.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"regportal/internal/registration"
	"regportal/internal/registration/export"
	"regportal/pkg/httputil"
	"regportal/pkg/requestcontext"
)

// Service defines the registration operations the handler needs.
type Service interface {
	Register(ctx context.Context, candidate registration.Registrant) (registration.Registrant, error)
	ListAll(ctx context.Context) ([]registration.Registrant, error)
	Stats(ctx context.Context) (registration.Stats, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public sign-up endpoint.
func (h *Handler) Register(r chi.Router) {
	r.Post("/register", h.handleSubmit)
}

// RegisterAdmin mounts the admin-gated listing, statistics, and export
// endpoints. The caller is responsible for wrapping the router with the admin
// middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/registrations", h.handleList)
	r.Get("/stats", h.handleStats)
	r.Get("/export/csv", h.handleExportCSV)
	r.Get("/export/xlsx", h.handleExportWorkbook)
}

// SubmitRequest is the public sign-up payload.
type SubmitRequest struct {
	LastName        string `json:"last_name"`
	FirstName       string `json:"first_name"`
	NationalID      string `json:"national_id"`
	Phone           string `json:"phone"`
	Organization    string `json:"organization"`
	PreferredPeriod string `json:"preferred_period"`
	Sex             string `json:"sex"`
	Age             int    `json:"age"`
	Level           string `json:"level"`
	AttendanceMode  string `json:"attendance_mode"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger)
	if !ok {
		return
	}

	candidate := registration.Registrant{
		LastName:        req.LastName,
		FirstName:       req.FirstName,
		NationalID:      req.NationalID,
		Phone:           req.Phone,
		Organization:    req.Organization,
		PreferredPeriod: req.PreferredPeriod,
		Sex:             registration.Sex(req.Sex),
		Age:             req.Age,
		Level:           registration.Level(req.Level),
		AttendanceMode:  registration.AttendanceMode(req.AttendanceMode),
	}

	stored, err := h.service.Register(ctx, candidate)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, stored)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListAll(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"total":         len(records),
		"registrations": records,
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "csv", "text/csv", export.CSV)
}

func (h *Handler) handleExportWorkbook(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		export.Workbook)
}

func (h *Handler) export(
	w http.ResponseWriter,
	r *http.Request,
	ext, contentType string,
	render func([]registration.Registrant) ([]byte, error),
) {
	ctx := r.Context()
	records, err := h.service.ListAll(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	payload, err := render(records)
	if err != nil {
		h.logger.ErrorContext(ctx, "export render failed",
			"request_id", requestcontext.RequestID(ctx),
			"format", ext,
			"error", err,
		)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("registrations_%s.%s", requestcontext.Now(ctx).Format("20060102_150405"), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
