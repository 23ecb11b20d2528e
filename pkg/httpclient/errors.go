package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nao1215/forum/pkg/jsonx"
)

// ErrUnauthorized はバックエンドが401を返したことを表す。
// errors.Is(err, ErrUnauthorized) で判定する。
var ErrUnauthorized = errors.New("認証されていません")

// StatusError は2xx以外のHTTPステータスを受信したことを表すエラー。
type StatusError struct {
	// Method はリクエストのHTTPメソッド。
	Method string
	// URL はリクエスト先のURL。
	URL string
	// StatusCode はレスポンスのHTTPステータスコード。
	StatusCode int
	// Body はレスポンスボディ。
	Body []byte
	// Detail はバックエンドが返した {"detail": ...} の内容。存在しない場合は空文字列。
	Detail string
}

// Error はエラーメッセージを返す。
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTPエラー: %s %s: status=%d, body=%s", e.Method, e.URL, e.StatusCode, string(e.Body))
}

// Is は401の場合にErrUnauthorizedと一致させる。
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// StatusCode はerrがStatusErrorを含む場合にそのステータスコードを返す。
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

// parseDetail はFastAPI形式のエラーボディからdetailを取り出す。
// detailが文字列以外（バリデーションエラーの配列など）の場合はJSONのまま返す。
func parseDetail(body []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := jsonx.Unmarshal(body, &payload); err != nil || payload.Detail == nil {
		return ""
	}
	if s, ok := payload.Detail.(string); ok {
		return s
	}
	raw, err := jsonx.Marshal(payload.Detail)
	if err != nil {
		return ""
	}
	return string(raw)
}
