package httptransport_test

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regportal/internal/auth"
	"regportal/internal/content"
	"regportal/internal/registration/handler"
	"regportal/internal/registration/service"
	"regportal/internal/registration/store"
	"regportal/internal/siteconfig"
	httptransport "regportal/internal/transport/http"
	"regportal/pkg/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authSvc, err := auth.New("admin", "", "python2025", "test-signing-key")
	require.NoError(t, err)

	regSvc := service.New(store.NewMemoryStore(), logger, nil)
	dir := t.TempDir()

	return httptransport.NewRouter(httptransport.Deps{
		Logger:       logger,
		Auth:         authSvc,
		AuthHandler:  auth.NewHandler(authSvc, logger),
		Registration: handler.New(regSvc, logger),
		Content:      content.NewHandler(content.NewStore(filepath.Join(dir, "content")), logger),
		SiteConfig:   siteconfig.NewHandler(siteconfig.NewStore(filepath.Join(dir, "site_config.json")), logger),
	})
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/admin/login",
		map[string]string{"username": "admin", "password": "python2025"})
	w := testutil.DoRequest(t, router, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	testutil.DecodeJSON(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil)
	w := testutil.DoRequest(t, router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/site-config", "/content/intro", "/metrics"} {
		req := testutil.NewJSONRequest(t, http.MethodGet, path, nil)
		w := testutil.DoRequest(t, router, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestAdminRoutesRejectAnonymous(t *testing.T) {
	router := newTestRouter(t)

	paths := []string{"/admin/registrations", "/admin/stats", "/admin/export/csv", "/admin/export/xlsx"}
	for _, path := range paths {
		req := testutil.NewJSONRequest(t, http.MethodGet, path, nil)
		w := testutil.DoRequest(t, router, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestSubmitThenAdminList(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]any{
		"last_name": "Ouedraogo", "first_name": "Awa",
		"national_id": "b1234567", "phone": "70123456",
		"organization": "Sonabel", "preferred_period": "July",
		"sex": "Female", "age": 29, "level": "Beginner", "attendance_mode": "Online",
	}
	w := testutil.DoRequest(t, router, testutil.NewJSONRequest(t, http.MethodPost, "/register", body))
	require.Equal(t, http.StatusCreated, w.Code)

	// Same ID, different case: rejected without touching the dataset.
	w = testutil.DoRequest(t, router, testutil.NewJSONRequest(t, http.MethodPost, "/register", body))
	require.Equal(t, http.StatusConflict, w.Code)

	token := login(t, router)
	req := testutil.NewJSONRequest(t, http.MethodGet, "/admin/registrations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = testutil.DoRequest(t, router, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int `json:"total"`
	}
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, 1, resp.Total)
}

func TestAdminEditsContentAndConfig(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/admin/content/intro",
		map[string]string{"content": "Week one: Python basics."})
	req.Header.Set("Authorization", "Bearer "+token)
	w := testutil.DoRequest(t, router, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoRequest(t, router, testutil.NewJSONRequest(t, http.MethodGet, "/content/intro", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Content string `json:"content"`
	}
	testutil.DecodeJSON(t, w, &page)
	assert.Equal(t, "Week one: Python basics.", page.Content)

	req = testutil.NewJSONRequest(t, http.MethodPut, "/admin/site-config",
		map[string]string{"site_title": "Bootcamp", "site_description": "desc"})
	req.Header.Set("Authorization", "Bearer "+token)
	w = testutil.DoRequest(t, router, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoRequest(t, router, testutil.NewJSONRequest(t, http.MethodGet, "/site-config", nil))
	var doc siteconfig.Document
	testutil.DecodeJSON(t, w, &doc)
	assert.Equal(t, "Bootcamp", doc.SiteTitle)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/admin/login",
		map[string]string{"username": "admin", "password": "wrong"})
	w := testutil.DoRequest(t, router, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
