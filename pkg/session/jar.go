package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/nao1215/forum/pkg/jsonx"
	"golang.org/x/net/publicsuffix"
)

// CookiesKey はバックエンドのCookieを永続化するキー。
const CookiesKey = "cookies"

// storedCookie は永続化するCookieの表現。
type storedCookie struct {
	// Name はCookie名。
	Name string `json:"name"`
	// Value はCookieの値。
	Value string `json:"value"`
}

// Jar はバックエンドが発行したCookieを保持し、Storeに永続化するCookie Jar。
// http.CookieJarを実装し、APIクライアントのcredentials: include相当の動作を担う。
// 永続化の対象はベースURLのオリジンに送信されるCookieのみ。
type Jar struct {
	// store はCookieの永続化先。
	store Store
	// origin はバックエンドのベースURL。
	origin *url.URL
	// logger はログの出力先。
	logger *slog.Logger

	mu  sync.Mutex
	jar *cookiejar.Jar
}

var _ http.CookieJar = (*Jar)(nil)

// NewJar はStoreに保存済みのCookieを読み込んだJarを生成する。
func NewJar(ctx context.Context, store Store, baseURL string) (*Jar, error) {
	origin, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ベースURLの解析に失敗: %w", err)
	}

	inner, err := newCookieJar()
	if err != nil {
		return nil, err
	}

	j := &Jar{
		store:  store,
		origin: origin,
		logger: slog.Default(),
		jar:    inner,
	}

	raw, ok, err := store.Get(ctx, CookiesKey)
	if err != nil {
		return nil, fmt.Errorf("保存済みCookieの読み込みに失敗: %w", err)
	}
	if ok {
		var stored []storedCookie
		if err := jsonx.Unmarshal([]byte(raw), &stored); err != nil {
			// 壊れた値は破棄して空のJarから始める
			j.logger.WarnContext(ctx, "discarding unreadable cookies", "error", err)
			return j, nil
		}
		cookies := make([]*http.Cookie, 0, len(stored))
		for _, c := range stored {
			cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
		}
		inner.SetCookies(origin, cookies)
	}
	return j, nil
}

func newCookieJar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("Cookie Jarの生成に失敗: %w", err)
	}
	return jar, nil
}

// SetCookies はレスポンスで受け取ったCookieを保持する。
// バックエンドのオリジンに関するCookieが変化した場合はStoreに書き戻す。
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(u, cookies)
	if u.Hostname() != j.origin.Hostname() {
		return
	}
	if err := j.persist(context.Background()); err != nil {
		j.logger.Warn("failed to persist cookies", "error", err)
	}
}

// Cookies はリクエスト先のURLに送信するCookieを返す。
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// Clear は保持しているCookieをすべて破棄し、永続化した値も削除する。
func (j *Jar) Clear(ctx context.Context) error {
	inner, err := newCookieJar()
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar = inner
	if err := j.store.Delete(ctx, CookiesKey); err != nil {
		return fmt.Errorf("保存済みCookieの削除に失敗: %w", err)
	}
	return nil
}

// persist はオリジンに送信するCookieをStoreに保存する。j.muを保持した状態で呼び出す。
func (j *Jar) persist(ctx context.Context) error {
	current := j.jar.Cookies(j.origin)
	if len(current) == 0 {
		return j.store.Delete(ctx, CookiesKey)
	}

	stored := make([]storedCookie, 0, len(current))
	for _, c := range current {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	raw, err := jsonx.Marshal(stored)
	if err != nil {
		return fmt.Errorf("Cookieのシリアライズに失敗: %w", err)
	}
	return j.store.Set(ctx, CookiesKey, string(raw))
}
