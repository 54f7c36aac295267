package content

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "regportal/pkg/domain-errors"
	"regportal/pkg/httputil"
	"regportal/pkg/requestcontext"
)

// Handler exposes the course content viewer and the admin editor.
type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts the public read endpoint.
func (h *Handler) Register(r chi.Router) {
	r.Get("/content/{module}", h.handleRead)
}

// RegisterAdmin mounts the admin-gated write endpoint.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Put("/content/{module}", h.handleWrite)
}

type contentResponse struct {
	Module  string `json:"module"`
	Content string `json:"content"`
}

type writeRequest struct {
	Content string `json:"content"`
}

func (h *Handler) handleRead(w http.ResponseWriter, r *http.Request) {
	module := chi.URLParam(r, "module")
	text, err := h.store.Read(module)
	if err != nil {
		h.writeStoreError(w, r, module, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, contentResponse{Module: module, Content: text})
}

func (h *Handler) handleWrite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	module := chi.URLParam(r, "module")

	req, ok := httputil.DecodeAndPrepare[writeRequest](w, r, h.logger)
	if !ok {
		return
	}
	if err := h.store.Write(module, req.Content); err != nil {
		h.writeStoreError(w, r, module, err)
		return
	}

	h.logger.InfoContext(ctx, "course content updated",
		"request_id", requestcontext.RequestID(ctx),
		"module", module,
		"admin", requestcontext.AdminUser(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, contentResponse{Module: module, Content: req.Content})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, module string, err error) {
	if errors.Is(err, ErrInvalidModule) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid module name"))
		return
	}
	h.logger.ErrorContext(r.Context(), "content store failure",
		"request_id", requestcontext.RequestID(r.Context()),
		"module", module,
		"error", err,
	)
	httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "could not access course content"))
}
