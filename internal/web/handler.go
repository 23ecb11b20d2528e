package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/forum/internal/app"
	"github.com/nao1215/forum/pkg/api"
	"github.com/nao1215/forum/pkg/event"
	"github.com/nao1215/forum/pkg/httpclient"
	"github.com/nao1215/forum/pkg/middleware"
	"github.com/nao1215/forum/pkg/router"
	"github.com/nao1215/forum/pkg/session"
)

// errBadParam はパスパラメータが不正なことを示す。
var errBadParam = errors.New("不正なパスパラメータです")

// PageDocument はページ表示に必要な情報をまとめたドキュメント。
type PageDocument struct {
	// Route はルート名。
	Route string `json:"route"`
	// Component は表示するビューコンポーネント名。
	Component string `json:"component"`
	// Path はナビゲーションしたパス。
	Path string `json:"path"`
	// Params はパスパラメータ。
	Params map[string]string `json:"params"`
	// Data はAPIクライアントで取得したデータ。取得しないページではnull。
	Data any `json:"data"`
}

// loadData はルートに応じてページのデータをAPIクライアントで取得する。
func (s *Server) loadData(ctx context.Context, c *gin.Context, loc router.Location) (any, error) {
	client := s.app.Client
	switch loc.Name() {
	case "Home":
		var opts []api.PageOption
		if v, err := strconv.Atoi(c.Query("skip")); err == nil {
			opts = append(opts, api.WithSkip(v))
		}
		if v, err := strconv.Atoi(c.Query("limit")); err == nil {
			opts = append(opts, api.WithLimit(v))
		}
		return client.GetPosts(ctx, opts...)
	case "PostDetail":
		id, err := strconv.Atoi(loc.Params["id"])
		if err != nil {
			return nil, errBadParam
		}
		return client.GetPost(ctx, id)
	case "Profile":
		return client.GetUserProfile(ctx, loc.Params["username"])
	default:
		return nil, nil
	}
}

// handlePage はページドキュメントを返すハンドラを返す。
func (s *Server) handlePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		loc, ok := middleware.LocationFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ナビゲーションが確定していません"})
			return
		}

		data, err := s.loadData(c.Request.Context(), c, loc)
		if err != nil {
			s.writeLoadError(c, err)
			return
		}

		c.JSON(http.StatusOK, PageDocument{
			Route:     loc.Name(),
			Component: loc.Route.Component,
			Path:      loc.Path,
			Params:    loc.Params,
			Data:      data,
		})
	}
}

// writeLoadError はデータ取得の失敗をレスポンスに変換する。
// 401の場合はセッション失効の購読者がフラグを解除しルーターをログイン画面へ遷移済みのため、302で誘導する。
func (s *Server) writeLoadError(c *gin.Context, err error) {
	if errors.Is(err, errBadParam) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, httpclient.ErrUnauthorized) {
		c.Redirect(http.StatusFound, router.LoginPath)
		return
	}

	var se *httpclient.StatusError
	if errors.As(err, &se) {
		detail := se.Detail
		if detail == "" {
			detail = http.StatusText(se.StatusCode)
		}
		c.JSON(se.StatusCode, gin.H{"error": detail})
		return
	}

	c.Error(err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "バックエンドに接続できません"})
}

// handleRoutes はルート表を返すハンドラを返す。
func (s *Server) handleRoutes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.app.Router.Routes())
	}
}

// handleSession はセッションフラグの有無を返すハンドラを返す。
func (s *Server) handleSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": s.app.Session.IsAuthenticated(c.Request.Context())})
	}
}

// handleSessionEvents はセッションイベントの履歴を新しい順に返すハンドラを返す。
// クエリパラメータtypeとlimitで絞り込める。
func (s *Server) handleSessionEvents() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := session.HistoryFilter{Type: event.Type(c.Query("type"))}
		if raw := c.Query("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limitは正の整数で指定してください"})
				return
			}
			filter.Limit = limit
		}

		events, err := s.app.History(c.Request.Context(), filter)
		if errors.Is(err, app.ErrHistoryUnsupported) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "履歴の取得に失敗しました"})
			return
		}
		if events == nil {
			events = []event.Event{}
		}
		c.JSON(http.StatusOK, events)
	}
}
