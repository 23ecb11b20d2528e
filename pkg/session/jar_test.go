package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// newCookieServer はログイン時にsession_idを発行し、ログアウト時に削除するテストサーバーを生成する。
// /echo は受け取ったsession_idをレスポンスボディとして返す。
func newCookieServer(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session_id", Value: "abc123", Path: "/", HttpOnly: true, MaxAge: 7 * 24 * 60 * 60})
		case "/auth/logout":
			http.SetCookie(w, &http.Cookie{Name: "session_id", Value: "", Path: "/", MaxAge: -1})
		case "/echo":
			if c, err := r.Cookie("session_id"); err == nil {
				w.Write([]byte(c.Value))
			}
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

// fetch はJarを設定したクライアントでGETし、ボディを文字列で返す。
func fetch(t *testing.T, jar http.CookieJar, rawURL string) string {
	t.Helper()

	client := &http.Client{Jar: jar}
	resp, err := client.Get(rawURL)
	if err != nil {
		t.Fatalf("GETに失敗: %v", err)
	}
	defer resp.Body.Close()

	buf := make([]byte, 64)
	n, _ := resp.Body.Read(buf)
	return string(buf[:n])
}

// TestJar はJarのCookie保持と永続化を検証する。
func TestJar(t *testing.T) {
	t.Parallel()

	t.Run("受け取ったCookieが以降のリクエストで送信されること", func(t *testing.T) {
		t.Parallel()

		ts := newCookieServer(t)
		jar, err := NewJar(context.Background(), NewMemoryStore(), ts.URL)
		if err != nil {
			t.Fatalf("NewJar()でエラーが発生: %v", err)
		}

		fetch(t, jar, ts.URL+"/auth/login")
		if got := fetch(t, jar, ts.URL+"/echo"); got != "abc123" {
			t.Errorf("送信されたsession_id = %q, want %q", got, "abc123")
		}
	})

	t.Run("Cookieが永続化され新しいJarに引き継がれること", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		ts := newCookieServer(t)
		store := NewMemoryStore()

		first, err := NewJar(ctx, store, ts.URL)
		if err != nil {
			t.Fatalf("NewJar()でエラーが発生: %v", err)
		}
		fetch(t, first, ts.URL+"/auth/login")

		if _, ok, _ := store.Get(ctx, CookiesKey); !ok {
			t.Fatal("Cookieが永続化されていない")
		}

		second, err := NewJar(ctx, store, ts.URL)
		if err != nil {
			t.Fatalf("2回目のNewJar()でエラーが発生: %v", err)
		}
		if got := fetch(t, second, ts.URL+"/echo"); got != "abc123" {
			t.Errorf("引き継がれたsession_id = %q, want %q", got, "abc123")
		}
	})

	t.Run("バックエンドがCookieを削除すると永続化した値も削除されること", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		ts := newCookieServer(t)
		store := NewMemoryStore()
		jar, err := NewJar(ctx, store, ts.URL)
		if err != nil {
			t.Fatalf("NewJar()でエラーが発生: %v", err)
		}

		fetch(t, jar, ts.URL+"/auth/login")
		fetch(t, jar, ts.URL+"/auth/logout")

		if _, ok, _ := store.Get(ctx, CookiesKey); ok {
			t.Error("削除されたCookieが永続化されたまま")
		}
		if got := fetch(t, jar, ts.URL+"/echo"); got != "" {
			t.Errorf("送信されたsession_id = %q, want empty string", got)
		}
	})

	t.Run("Clearで保持と永続化の両方が破棄されること", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		ts := newCookieServer(t)
		store := NewMemoryStore()
		jar, err := NewJar(ctx, store, ts.URL)
		if err != nil {
			t.Fatalf("NewJar()でエラーが発生: %v", err)
		}
		fetch(t, jar, ts.URL+"/auth/login")

		if err := jar.Clear(ctx); err != nil {
			t.Fatalf("Clear()でエラーが発生: %v", err)
		}
		if _, ok, _ := store.Get(ctx, CookiesKey); ok {
			t.Error("Clear後もCookieが永続化されたまま")
		}
		if got := fetch(t, jar, ts.URL+"/echo"); got != "" {
			t.Errorf("送信されたsession_id = %q, want empty string", got)
		}
	})

	t.Run("他のオリジンのCookieは永続化されないこと", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := NewMemoryStore()
		jar, err := NewJar(ctx, store, "http://localhost:8000")
		if err != nil {
			t.Fatalf("NewJar()でエラーが発生: %v", err)
		}

		other, _ := url.Parse("http://example.com/")
		jar.SetCookies(other, []*http.Cookie{{Name: "tracking", Value: "x"}})

		if _, ok, _ := store.Get(ctx, CookiesKey); ok {
			t.Error("他のオリジンのCookieが永続化された")
		}
	})

	t.Run("壊れた永続化データは破棄されること", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := NewMemoryStore()
		_ = store.Set(ctx, CookiesKey, "{broken")

		jar, err := NewJar(ctx, store, "http://localhost:8000")
		if err != nil {
			t.Fatalf("NewJar()でエラーが発生: %v", err)
		}
		origin, _ := url.Parse("http://localhost:8000/")
		if got := jar.Cookies(origin); len(got) != 0 {
			t.Errorf("Cookies() = %v, want empty", got)
		}
	})

	t.Run("不正なベースURLでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		if _, err := NewJar(context.Background(), NewMemoryStore(), "://bad"); err == nil {
			t.Fatal("NewJar()がエラーを返すべきだが、nilが返った")
		}
	})
}
