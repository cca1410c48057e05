package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
)

func newHandler(t *testing.T) *OAuthHandler {
	t.Helper()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"at","refresh_token":"rt","token_type":"Bearer","expires_in":3600}`)
	}))
	t.Cleanup(tokenSrv.Close)

	config := &oauth2.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{TokenURL: tokenSrv.URL},
	}
	return NewOAuthHandler(config, "expected-state")
}

func TestOAuthHandler(t *testing.T) {
	t.Run("successful callback delivers refresh token", func(t *testing.T) {
		handler := newHandler(t)

		req := httptest.NewRequest("GET", "/callback?state=expected-state&code=auth-code", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		result := <-handler.Result()
		if result.Error() != nil {
			t.Fatalf("unexpected error: %v", result.Error())
		}
		if result.Token.RefreshToken != "rt" {
			t.Errorf("refresh token = %q, want rt", result.Token.RefreshToken)
		}
	})

	t.Run("state mismatch rejected", func(t *testing.T) {
		handler := newHandler(t)

		req := httptest.NewRequest("GET", "/callback?state=wrong&code=auth-code", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if result := <-handler.Result(); result.Error() == nil {
			t.Error("expected a state validation error")
		}
	})

	t.Run("denied authorization surfaces the provider error", func(t *testing.T) {
		handler := newHandler(t)

		req := httptest.NewRequest("GET", "/callback?state=expected-state&error=access_denied", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if result := <-handler.Result(); result.Error() == nil {
			t.Error("expected an authorization error")
		}
	})

	t.Run("second callback rejected", func(t *testing.T) {
		handler := newHandler(t)

		first := httptest.NewRequest("GET", "/callback?state=expected-state&code=auth-code", nil)
		handler.ServeHTTP(httptest.NewRecorder(), first)

		second := httptest.NewRequest("GET", "/callback?state=expected-state&code=auth-code", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, second)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
