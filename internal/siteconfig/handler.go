package siteconfig

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	dErrors "regportal/pkg/domain-errors"
	"regportal/pkg/httputil"
	"regportal/pkg/requestcontext"
)

// Handler exposes the site configuration document.
type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts the public read endpoint.
func (h *Handler) Register(r chi.Router) {
	r.Get("/site-config", h.handleGet)
}

// RegisterAdmin mounts the admin-gated save endpoint.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Put("/site-config", h.handlePut)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.store.Load())
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, ok := httputil.DecodeAndPrepare[Document](w, r, h.logger)
	if !ok {
		return
	}
	if strings.TrimSpace(doc.SiteTitle) == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "site_title is required"))
		return
	}

	if err := h.store.Save(doc); err != nil {
		h.logger.ErrorContext(ctx, "site config save failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "could not save site configuration"))
		return
	}

	h.logger.InfoContext(ctx, "site config updated",
		"request_id", requestcontext.RequestID(ctx),
		"admin", requestcontext.AdminUser(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, doc)
}
