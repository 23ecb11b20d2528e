package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/forum/pkg/router"
)

// locationKey はginのコンテキストに確定したLocationを格納するキー。
const locationKey = "forum.location"

// NavigationGuard はGETリクエストのパスをルーターでナビゲーションするGinミドルウェアを返す。
// ガードがリダイレクトした場合は302でリダイレクト先を返す。
// ルートが存在しない場合は404を返す。
// 確定したLocationはLocationFromで取得できる。
func NavigationGuard(r *router.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}

		loc, err := r.Push(c.Request.Context(), c.Request.URL.Path)
		switch {
		case errors.Is(err, router.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "ページが見つかりません"})
			return
		case err != nil:
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Set(locationKey, loc)
		if loc.RedirectedFrom != "" {
			c.Redirect(http.StatusFound, loc.Path)
			c.Abort()
			return
		}
		c.Next()
	}
}

// LocationFrom はNavigationGuardが確定したLocationを返す。
func LocationFrom(c *gin.Context) (router.Location, bool) {
	v, ok := c.Get(locationKey)
	if !ok {
		return router.Location{}, false
	}
	loc, ok := v.(router.Location)
	return loc, ok
}

func routeName(v any) string {
	loc, ok := v.(router.Location)
	if !ok {
		return ""
	}
	return loc.Name()
}
