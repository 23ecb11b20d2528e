package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nao1215/forum/pkg/httpclient"
)

// HeaderKeyRequestID はリクエストを識別するためのHTTPヘッダーキー。
const HeaderKeyRequestID = "X-Request-ID"

// RequestID はリクエストIDを採番するGinミドルウェアを返す。
// 受信したX-Request-IDがあればそれを使い、なければUUIDを生成する。
// IDはレスポンスヘッダーとリクエストのコンテキストに設定され、
// APIクライアント経由でバックエンドへ伝播する。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderKeyRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderKeyRequestID, id)
		c.Request = c.Request.WithContext(httpclient.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
