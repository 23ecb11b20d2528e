package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nao1215/forum/pkg/jsonx"
)

// headerKeyRequestID はリクエストを識別するためのHTTPヘッダーキー。
const headerKeyRequestID = "X-Request-ID"

// ResponseInterceptor はレスポンスを受信した後、呼び出し元に結果を返す前に実行される関数。
// respはボディを読み終えた状態で渡され、通信エラーの場合はnilとなる。
// インターセプターはエラーを観測できるが、握りつぶすことはできない。
type ResponseInterceptor func(ctx context.Context, resp *http.Response, err error)

// Client はフォーラムバックエンドとのJSON通信を行うHTTPクライアント。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先バックエンドのベースURL。
	baseURL string
	// header は全リクエストに付与する共通ヘッダー。
	header http.Header
	// jar はCookie Jar。設定された場合はhttpClientに適用される。
	jar http.CookieJar
	// interceptors はレスポンスインターセプターの一覧。登録順に実行される。
	interceptors []ResponseInterceptor
	// logger はリクエストログの出力先。
	logger *slog.Logger
}

// Option はClientの設定を変更する関数。
type Option func(*Client)

// WithHTTPClient は内部で使用するhttp.Clientを差し替える。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCookieJar はCookie Jarを設定する。
// 設定するとバックエンドが発行したセッションCookieが以降のリクエストに送信される。
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithHeader は全リクエストに付与するヘッダーを追加する。
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// WithLogger はログの出力先を設定する。
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithResponseInterceptor はレスポンスインターセプターを追加する。
func WithResponseInterceptor(fn ResponseInterceptor) Option {
	return func(c *Client) {
		c.interceptors = append(c.interceptors, fn)
	}
}

// New は新しいHTTPクライアントを生成する。
// baseURLには接続先バックエンドのベースURL（例: "http://localhost:8000"）を指定する。
// タイムアウトは設定しない。呼び出し側がcontextで制御する。
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		header:     make(http.Header),
		logger:     slog.Default(),
	}
	c.header.Set("Content-Type", "application/json")
	c.header.Set("Accept", "application/json")

	for _, opt := range opts {
		opt(c)
	}

	if c.jar != nil {
		hc := *c.httpClient
		hc.Jar = c.jar
		c.httpClient = &hc
	}
	return c
}

// BaseURL は接続先のベースURLを返す。
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AddResponseInterceptor は生成後のクライアントにレスポンスインターセプターを追加する。
// リクエストの発行と並行して呼び出してはならない。
func (c *Client) AddResponseInterceptor(fn ResponseInterceptor) {
	c.interceptors = append(c.interceptors, fn)
}

// Request は1回のHTTPリクエストの内容を表す。
type Request struct {
	// Method はHTTPメソッド。
	Method string
	// Path はベースURLからの相対パス。クエリ文字列を含めてよい。
	Path string
	// Body はJSONにシリアライズして送信するボディ。nilの場合はボディを送信しない。
	Body any
}

// GetJSON は指定パスにGETリクエストを送信する。
// レスポンスボディをresultにデシリアライズする。
func (c *Client) GetJSON(ctx context.Context, path string, result any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path}, result)
}

// PostJSON は指定パスにJSONボディでPOSTリクエストを送信する。
// bodyがnilの場合はボディなしで送信する。
func (c *Client) PostJSON(ctx context.Context, path string, body any, result any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, result)
}

// PutJSON は指定パスにJSONボディでPUTリクエストを送信する。
func (c *Client) PutJSON(ctx context.Context, path string, body any, result any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, result)
}

// DeleteJSON は指定パスにDELETEリクエストを送信する。
func (c *Client) DeleteJSON(ctx context.Context, path string, result any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, result)
}

// Do はJSON形式のHTTPリクエストを実行する共通処理。
// 2xx以外のステータスは*StatusErrorとして返す。
// resultがnilの場合やレスポンスボディが空の場合はデシリアライズしない。
func (c *Client) Do(ctx context.Context, r Request, result any) error {
	var bodyReader io.Reader
	if r.Body != nil {
		jsonBody, err := jsonx.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	url := c.baseURL + r.Path
	req, err := http.NewRequestWithContext(ctx, r.Method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	for key, values := range c.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	// コンテキストからリクエストIDを伝播する。未設定の場合は新規に採番する
	requestID, ok := ctx.Value(contextKeyRequestID).(string)
	if !ok {
		requestID = uuid.NewString()
	}
	req.Header.Set(headerKeyRequestID, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
		c.logger.DebugContext(ctx, "request failed",
			"method", r.Method, "url", url, "request_id", requestID, "error", err)
		c.intercept(ctx, nil, err)
		return err
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	c.logger.DebugContext(ctx, "request completed",
		"method", r.Method,
		"url", url,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := &StatusError{
			Method:     r.Method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Detail:     parseDetail(respBody),
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.logger.WarnContext(ctx, "backend rejected the session",
				"method", r.Method, "url", url, "request_id", requestID)
		}
		c.intercept(ctx, resp, err)
		return err
	}

	if readErr != nil {
		err := fmt.Errorf("レスポンスボディの読み込みに失敗: %w", readErr)
		c.intercept(ctx, resp, err)
		return err
	}

	c.intercept(ctx, resp, nil)

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := jsonx.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("レスポンスボディのデシリアライズに失敗: %w", err)
		}
	}
	return nil
}

// intercept は登録されたインターセプターを順に実行する。
func (c *Client) intercept(ctx context.Context, resp *http.Response, err error) {
	for _, fn := range c.interceptors {
		fn(ctx, resp, err)
	}
}

// contextKey はコンテキストキーの型。
type contextKey string

// contextKeyRequestID はコンテキストにリクエストIDを格納するためのキー。
const contextKeyRequestID contextKey = "request_id"

// WithRequestID はコンテキストにリクエストIDを設定する。
// Webホストが受け付けたリクエストのIDをバックエンドへ伝播するために使用する。
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// RequestIDFromContext はコンテキストに設定されたリクエストIDを返す。
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKeyRequestID).(string)
	return id, ok
}
