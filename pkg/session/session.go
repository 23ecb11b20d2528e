package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nao1215/forum/pkg/event"
)

// FlagKey はセッションフラグを保存するキー。
// キーが存在すればログイン済みとみなす。
const FlagKey = "user"

// Subscriber はセッションイベントの購読者。
type Subscriber func(event.Event)

// Session はセッションフラグを管理するコンテキストオブジェクト。
// ルーターのガードとホストアプリケーションが共有する。
type Session struct {
	// store はセッションフラグの保存先。
	store Store
	// logger はログの出力先。
	logger *slog.Logger

	mu          sync.Mutex
	subscribers []subscription
	nextID      int
}

type subscription struct {
	id int
	fn Subscriber
}

// Option はSessionの設定を変更する関数。
type Option func(*Session)

// WithLogger はログの出力先を設定する。
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New は指定したStoreを保存先とするSessionを生成する。
func New(store Store, opts ...Option) *Session {
	s := &Session{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store はセッションフラグの保存先を返す。
func (s *Session) Store() Store {
	return s.store
}

// IsAuthenticated はセッションフラグが存在するかどうかを返す。
// 値の中身は解釈しない。Storeの読み込みに失敗した場合は未ログインとみなす。
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	_, ok, err := s.store.Get(ctx, FlagKey)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read session flag", "error", err)
		return false
	}
	return ok
}

// Value はセッションフラグに保存された値を返す。
func (s *Session) Value(ctx context.Context) (string, bool, error) {
	return s.store.Get(ctx, FlagKey)
}

// Begin はセッションフラグを設定する。ログインまたはユーザー登録の成功時に呼び出す。
// valueにはバックエンドが返したユーザー情報を渡す。
func (s *Session) Begin(ctx context.Context, value string) error {
	if err := s.store.Set(ctx, FlagKey, value); err != nil {
		return fmt.Errorf("セッションフラグの設定に失敗: %w", err)
	}
	s.publish(event.New(event.TypeSessionStarted, ""))
	return nil
}

// End は明示的なログアウトによりセッションフラグを解除する。
func (s *Session) End(ctx context.Context) error {
	if err := s.store.Delete(ctx, FlagKey); err != nil {
		return fmt.Errorf("セッションフラグの解除に失敗: %w", err)
	}
	s.publish(event.New(event.TypeSessionEnded, ""))
	return nil
}

// Expire はバックエンドの401応答によりセッションフラグを解除する。
// フラグが既に存在しない場合でもイベントは通知される。
func (s *Session) Expire(ctx context.Context, reason string) error {
	if err := s.store.Delete(ctx, FlagKey); err != nil {
		return fmt.Errorf("セッションフラグの解除に失敗: %w", err)
	}
	s.logger.InfoContext(ctx, "session expired", "reason", reason)
	s.publish(event.New(event.TypeSessionExpired, reason))
	return nil
}

// Subscribe はセッションイベントの購読者を登録する。
// 購読者は登録順に、イベントを発生させたゴルーチン上で同期的に呼び出される。
// 戻り値の関数を呼び出すと購読を解除する。
func (s *Session) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// publish は購読者にイベントを通知する。
// 購読者の中でSubscribeを呼び出せるよう、ロックの外で実行する。
func (s *Session) publish(e event.Event) {
	s.mu.Lock()
	subs := make([]subscription, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(e)
	}
}
