package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/nao1215/forum/pkg/httpclient"
)

// DefaultBaseURL はバックエンドの既定のベースURL。
const DefaultBaseURL = "http://localhost:8000"

// 一覧取得の既定のページング。
const (
	defaultSkip  = 0
	defaultLimit = 20
)

// SessionExpiredFunc はバックエンドが401を返したときに呼び出される関数。
type SessionExpiredFunc func(ctx context.Context, err *httpclient.StatusError)

// Client はフォーラムバックエンドのAPIクライアント。並行に使用しても安全。
type Client struct {
	http   *httpclient.Client
	logger *slog.Logger

	mu       sync.RWMutex
	handlers []SessionExpiredFunc
}

type options struct {
	jar        http.CookieJar
	httpClient *http.Client
	logger     *slog.Logger
	handlers   []SessionExpiredFunc
}

// Option はClientの設定を変更する関数。
type Option func(*options)

// WithCookieJar はセッションCookieを保持するCookie Jarを設定する。
// 未設定の場合はプロセス内のメモリだけに保持するJarを使用する。
func WithCookieJar(jar http.CookieJar) Option {
	return func(o *options) {
		o.jar = jar
	}
}

// WithHTTPClient は内部で使用するhttp.Clientを差し替える。
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithLogger はログの出力先を設定する。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSessionExpiredHandler はOnSessionExpiredと同じ購読者を生成時に登録する。
func WithSessionExpiredHandler(fn SessionExpiredFunc) Option {
	return func(o *options) {
		o.handlers = append(o.handlers, fn)
	}
}

// New はbaseURLのバックエンドに接続するClientを生成する。
// baseURLが空の場合はDefaultBaseURLを使用する。
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	if o.jar == nil {
		jar, err := newMemoryJar()
		if err != nil {
			return nil, err
		}
		o.jar = jar
	}

	c := &Client{
		logger:   o.logger,
		handlers: o.handlers,
	}

	hopts := []httpclient.Option{
		httpclient.WithCookieJar(o.jar),
		httpclient.WithLogger(o.logger),
		httpclient.WithResponseInterceptor(c.interceptUnauthorized),
	}
	if o.httpClient != nil {
		hopts = append([]httpclient.Option{httpclient.WithHTTPClient(o.httpClient)}, hopts...)
	}
	c.http = httpclient.New(baseURL, hopts...)
	return c, nil
}

// BaseURL は接続先のベースURLを返す。
func (c *Client) BaseURL() string {
	return c.http.BaseURL()
}

// OnSessionExpired はバックエンドが401を返したときの購読者を登録する。
// 購読者は呼び出し元にエラーが返る前に、登録順に同期的に呼び出される。
// 戻り値の関数を呼び出すと購読を解除する。
func (c *Client) OnSessionExpired(fn SessionExpiredFunc) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, fn)
	idx := len(c.handlers) - 1

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.handlers[idx] = nil
		})
	}
}

// interceptUnauthorized は全レスポンスに適用するインターセプター。
// 401の場合にセッション失効の購読者を呼び出す。エラーはそのまま呼び出し元に返る。
func (c *Client) interceptUnauthorized(ctx context.Context, _ *http.Response, err error) {
	var se *httpclient.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
		return
	}

	c.mu.RLock()
	handlers := make([]SessionExpiredFunc, 0, len(c.handlers))
	for _, fn := range c.handlers {
		if fn != nil {
			handlers = append(handlers, fn)
		}
	}
	c.mu.RUnlock()

	c.logger.DebugContext(ctx, "notifying session expiry", "subscribers", len(handlers))
	for _, fn := range handlers {
		fn(ctx, se)
	}
}

// PageOption は一覧取得のページングを設定する関数。
type PageOption func(*page)

type page struct {
	skip  int
	limit int
}

// WithSkip は読み飛ばす件数を設定する。既定値は0。
func WithSkip(n int) PageOption {
	return func(p *page) {
		p.skip = n
	}
}

// WithLimit は取得する最大件数を設定する。既定値は20。
func WithLimit(n int) PageOption {
	return func(p *page) {
		p.limit = n
	}
}

// pagedPath はskip、limitの順でクエリを付与したパスを返す。
func pagedPath(base string, opts []PageOption) string {
	p := page{skip: defaultSkip, limit: defaultLimit}
	for _, opt := range opts {
		opt(&p)
	}
	return fmt.Sprintf("%s?skip=%d&limit=%d", base, p.skip, p.limit)
}
