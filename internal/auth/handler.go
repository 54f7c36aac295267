package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"regportal/pkg/httputil"
	"regportal/pkg/requestcontext"
)

// Handler exposes the admin login endpoint.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the login endpoint. It is mounted under /admin but must
// not sit behind the admin middleware itself.
func (h *Handler) Register(r chi.Router) {
	r.Post("/login", h.handleLogin)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[loginRequest](w, r, h.logger)
	if !ok {
		return
	}

	token, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "admin login rejected",
			"request_id", requestcontext.RequestID(ctx),
			"username", req.Username,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "admin logged in",
		"request_id", requestcontext.RequestID(ctx),
		"username", req.Username,
	)
	httputil.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}
