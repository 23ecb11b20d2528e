package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

// newCORSEngine はCORSミドルウェアを適用したテスト用エンジンを生成する。
func newCORSEngine(origins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(CORS(origins))
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"route": "/"})
	})
	return engine
}

// TestCORS はCORSミドルウェアを検証する。
func TestCORS(t *testing.T) {
	t.Parallel()

	origins := []string{"http://localhost:5173", "http://127.0.0.1:5173"}

	t.Run("許可されたオリジンにCookie付きアクセスを許可するヘッダーが設定されること", func(t *testing.T) {
		t.Parallel()

		for _, origin := range origins {
			w := serve(newCORSEngine(origins), http.MethodGet, "/", http.Header{"Origin": {origin}})

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != origin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, origin)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
				t.Errorf("Access-Control-Allow-Credentials = %q, want %q", got, "true")
			}
			if got := w.Header().Get("Access-Control-Expose-Headers"); got != HeaderKeyRequestID {
				t.Errorf("Access-Control-Expose-Headers = %q, want %q", got, HeaderKeyRequestID)
			}
			if got := w.Header().Get("Vary"); got != "Origin" {
				t.Errorf("Vary = %q, want %q", got, "Origin")
			}
			if w.Code != http.StatusOK {
				t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
			}
		}
	})

	t.Run("許可されていないオリジンにはCORSヘッダーが設定されないこと", func(t *testing.T) {
		t.Parallel()

		w := serve(newCORSEngine(origins), http.MethodGet, "/", http.Header{"Origin": {"http://evil.example.com"}})
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
			t.Errorf("Access-Control-Allow-Credentials = %q, want empty", got)
		}
	})

	t.Run("同一オリジンのリクエストはそのまま処理されること", func(t *testing.T) {
		t.Parallel()

		w := serve(newCORSEngine(nil), http.MethodGet, "/", nil)
		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Vary"); got != "" {
			t.Errorf("Vary = %q, want empty", got)
		}
	})

	t.Run("許可されたオリジンのプリフライトで204が返ること", func(t *testing.T) {
		t.Parallel()

		w := serve(newCORSEngine(origins), http.MethodOptions, "/", http.Header{
			"Origin":                        {origins[0]},
			"Access-Control-Request-Method": {http.MethodGet},
		})
		if w.Code != http.StatusNoContent {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusNoContent)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
			t.Errorf("Access-Control-Allow-Methods = %q, want %q", got, "GET, OPTIONS")
		}
	})

	t.Run("許可されていないオリジンのプリフライトで403が返ること", func(t *testing.T) {
		t.Parallel()

		w := serve(newCORSEngine(origins), http.MethodOptions, "/", http.Header{
			"Origin":                        {"http://evil.example.com"},
			"Access-Control-Request-Method": {http.MethodGet},
		})
		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusForbidden)
		}
	})
}
