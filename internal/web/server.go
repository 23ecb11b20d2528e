package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/forum/internal/app"
	"github.com/nao1215/forum/pkg/middleware"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout はグレースフルシャットダウンの待ち時間。
const shutdownTimeout = 5 * time.Second

// Server はナビゲーションホストのHTTPサーバー。
type Server struct {
	// engine はGinのHTTPルーター。
	engine *gin.Engine
	// app はクライアントの構成要素。
	app *app.App
	// addr は待ち受けアドレス。
	addr string
	// logger はログの出力先。
	logger *slog.Logger
}

// NewServer は新しいナビゲーションホストを生成する。
func NewServer(a *app.App, addr string) *Server {
	engine := gin.New()
	engine.Use(middleware.Recovery(a.Logger))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(a.Logger))
	engine.Use(middleware.CORS(a.Config.Web.AllowedOrigins))

	s := &Server{
		engine: engine,
		app:    a,
		addr:   addr,
		logger: a.Logger,
	}
	s.setupRoutes()
	return s
}

// Handler はHTTPハンドラーを返す。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// setupRoutes はルーティングを設定する。
func (s *Server) setupRoutes() {
	// ルート表の各パスをページとして公開する（ginのパス構文と同じ）
	pages := s.engine.Group("/", middleware.NavigationGuard(s.app.Router))
	for _, route := range s.app.Router.Routes() {
		pages.GET(route.Path, s.handlePage())
	}

	s.engine.GET("/_routes", s.handleRoutes())
	s.engine.GET("/_session", s.handleSession())
	s.engine.GET("/_session/events", s.handleSessionEvents())

	// ヘルスチェック
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "web"})
	})

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "ページが見つかりません"})
	})
}

// Run はaddrで待ち受けを開始し、ctxがキャンセルされるとグレースフルシャットダウンする。
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%s での待ち受けに失敗: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve はlnで受け付けたリクエストを処理し、ctxがキャンセルされるとグレースフルシャットダウンする。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.InfoContext(ctx, "navigation host started", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTPサーバーの実行に失敗: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTPサーバーのシャットダウンに失敗: %w", err)
		}
		s.logger.InfoContext(ctx, "navigation host stopped")
		return nil
	})
	return g.Wait()
}
