// Package app はforumクライアントの構成要素を組み立てる。
//
// セッションの保存先、セッション、Cookie Jar、APIクライアント、ルーターを生成し、
// APIクライアントのセッション失効シグナルを購読する。バックエンドが401を返すと
// セッションフラグを解除し、ルーターを強制的にログイン画面へ遷移させる。
// 保存先がイベント履歴に対応していれば、セッションイベントをすべて記録する。
// CLIとナビゲーションホストはこのAppを共有して動作する。
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/nao1215/forum/internal/config"
	"github.com/nao1215/forum/pkg/api"
	"github.com/nao1215/forum/pkg/event"
	"github.com/nao1215/forum/pkg/httpclient"
	"github.com/nao1215/forum/pkg/jsonx"
	"github.com/nao1215/forum/pkg/router"
	"github.com/nao1215/forum/pkg/session"
)

// ErrHistoryUnsupported はセッションの保存先がイベント履歴に対応していないことを表す。
var ErrHistoryUnsupported = errors.New("セッションの保存先はイベント履歴に対応していません")

// App はforumクライアントの構成要素をまとめたもの。
type App struct {
	// Config は読み込んだ設定。
	Config *config.Config
	// Logger はログの出力先。
	Logger *slog.Logger
	// Session はセッションフラグ。
	Session *session.Session
	// Jar はバックエンドのCookieを保持するCookie Jar。
	Jar *session.Jar
	// Client はバックエンドのAPIクライアント。
	Client *api.Client
	// Router はルート表とナビゲーションガード。
	Router *router.Router

	store   session.Store
	history session.EventLog
	closer  io.Closer
	expired atomic.Bool
}

type options struct {
	logger     *slog.Logger
	store      session.Store
	httpClient *http.Client
}

// Option はAppの生成方法を変更する関数。
type Option func(*options)

// WithLogger はログの出力先を設定する。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore は設定によらずセッションの保存先を指定する。
func WithStore(store session.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithHTTPClient はAPIクライアントが使用するhttp.Clientを差し替える。
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// New は設定からAppを生成する。使い終わったらCloseを呼び出す。
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg, Logger: o.logger}

	store := o.store
	if store == nil {
		var err error
		store, a.closer, err = openStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}
	a.store = store

	jar, err := session.NewJar(ctx, store, cfg.BaseURL)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("Cookie Jarの生成に失敗: %w", err)
	}
	a.Jar = jar
	a.Session = session.New(store, session.WithLogger(o.logger))
	if history, ok := store.(session.EventLog); ok {
		a.history = history
		a.Session.Subscribe(a.recordEvent)
	}
	a.Session.Subscribe(a.onSessionEvent)

	apiOpts := []api.Option{
		api.WithCookieJar(jar),
		api.WithLogger(o.logger),
		api.WithSessionExpiredHandler(a.onSessionExpired),
	}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(o.httpClient))
	}
	a.Client, err = api.New(cfg.BaseURL, apiOpts...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("APIクライアントの生成に失敗: %w", err)
	}

	a.Router = router.New(router.DefaultRoutes(), router.WithLogger(o.logger))
	a.Router.BeforeEach(router.AuthGuard(a.Session))
	return a, nil
}

// openStore は設定に応じたセッションの保存先を開く。
func openStore(ctx context.Context, cfg *config.Config) (session.Store, io.Closer, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return session.NewMemoryStore(), nil, nil
	case config.StoreSQLite, "":
		s, err := session.OpenSQLiteStore(ctx, cfg.StatePath())
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("不明なstoreです: %q", cfg.Store)
	}
}

// onSessionExpired はバックエンドの401応答で呼び出される。
// セッションフラグを解除し、ページの再読み込みと同様にログイン画面へ遷移する。
func (a *App) onSessionExpired(ctx context.Context, se *httpclient.StatusError) {
	reason := fmt.Sprintf("%s %s: status=%d", se.Method, se.URL, se.StatusCode)
	if err := a.Session.Expire(ctx, reason); err != nil {
		a.Logger.ErrorContext(ctx, "failed to clear session flag", "error", err)
	}
	if _, err := a.Router.ForceNavigate(ctx, router.LoginPath); err != nil {
		a.Logger.ErrorContext(ctx, "failed to navigate to login", "error", err)
	}
}

// onSessionEvent はセッションの終了と失効でバックエンドのCookieを破棄する。
func (a *App) onSessionEvent(e event.Event) {
	if e.Type == event.TypeSessionExpired {
		a.expired.Store(true)
	}
	if e.Authenticated() {
		return
	}
	if err := a.Jar.Clear(context.Background()); err != nil {
		a.Logger.Warn("failed to clear cookies", "event", e.Type, "error", err)
	}
}

// recordEvent はセッションイベントを履歴に追記する。
func (a *App) recordEvent(e event.Event) {
	if err := a.history.AppendEvent(context.Background(), e); err != nil {
		a.Logger.Warn("failed to record session event", "event", e.Type, "error", err)
	}
}

// History は記録済みのセッションイベントを新しい順に返す。
func (a *App) History(ctx context.Context, filter session.HistoryFilter) ([]event.Event, error) {
	if a.history == nil {
		return nil, ErrHistoryUnsupported
	}
	return a.history.Events(ctx, filter)
}

// SessionExpired はApp生成後にバックエンドの401応答でセッションが失効したかどうかを返す。
func (a *App) SessionExpired() bool {
	return a.expired.Load()
}

// Login はログインし、成功した場合はユーザー情報をセッションフラグに保存する。
func (a *App) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	resp, err := a.Client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := a.begin(ctx, resp.User); err != nil {
		return nil, err
	}
	return resp, nil
}

// Register はユーザーを登録し、成功した場合はユーザー情報をセッションフラグに保存する。
func (a *App) Register(ctx context.Context, user api.UserCreate) (*api.LoginResponse, error) {
	resp, err := a.Client.Register(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := a.begin(ctx, resp.User); err != nil {
		return nil, err
	}
	return resp, nil
}

// Logout はログアウトし、バックエンドの応答に関わらずセッションフラグを解除する。
func (a *App) Logout(ctx context.Context) (*api.MessageResponse, error) {
	resp, err := a.Client.Logout(ctx)
	if endErr := a.Session.End(ctx); endErr != nil {
		return nil, errors.Join(err, endErr)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Open はガードを通してpathへナビゲーションする。
func (a *App) Open(ctx context.Context, path string) (router.Location, error) {
	return a.Router.Push(ctx, path)
}

func (a *App) begin(ctx context.Context, user api.User) error {
	raw, err := jsonx.Marshal(user)
	if err != nil {
		return fmt.Errorf("ユーザー情報のシリアライズに失敗: %w", err)
	}
	return a.Session.Begin(ctx, string(raw))
}

// Close はセッションの保存先を閉じる。
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
