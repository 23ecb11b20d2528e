// Package event はクライアントのセッションライフサイクルで発生するイベントを定義する。
//
// セッションフラグの設定・解除はすべてEventとして購読者に通知される。
// ホストアプリケーションはこの通知を受けて画面遷移などの副作用を実行する。
package event

import "time"

// Type はイベントの種類を表す。
type Type string

const (
	// TypeSessionStarted はログインまたはユーザー登録によりセッションが開始されたことを表す。
	TypeSessionStarted Type = "SessionStarted"
	// TypeSessionEnded は明示的なログアウトによりセッションが終了したことを表す。
	TypeSessionEnded Type = "SessionEnded"
	// TypeSessionExpired はバックエンドが401を返したことによりセッションが失効したことを表す。
	TypeSessionExpired Type = "SessionExpired"
)

// Event はセッションの状態変化を表す不変のレコード。
type Event struct {
	// ID はイベントの一意識別子（UUID）。
	ID string `json:"id"`
	// Type はイベントの種類。
	Type Type `json:"type"`
	// Reason はイベントが発生した理由。失効時には失敗したリクエストの情報が入る。
	Reason string `json:"reason,omitempty"`
	// CreatedAt はイベントが作成された日時。
	CreatedAt time.Time `json:"created_at"`
}

// Authenticated はイベント発生後にセッションフラグが存在するかどうかを返す。
func (e Event) Authenticated() bool {
	return e.Type == TypeSessionStarted
}
