package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCors_PreflightFromShopDomain(t *testing.T) {
	handler := Cors("https://shop.example.com")(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/track", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	require.Equal(t, "https://shop.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestCors_DisallowedOriginGetsNoHeader(t *testing.T) {
	handler := Cors("https://shop.example.com")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/track", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	require.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCors_WildcardOrigin(t *testing.T) {
	handler := Cors("*")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/track", nil)
	req.Header.Set("Origin", "https://any-shop.myshopify.com")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	require.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}
