package session

import (
	"context"
	"sync"

	"github.com/nao1215/forum/pkg/event"
)

// Store はセッション情報を保存するキーバリューストア。
// 実装は並行に呼び出されても安全でなければならない。
type Store interface {
	// Get はキーに対応する値を返す。存在しない場合はfalseを返す。
	Get(ctx context.Context, key string) (string, bool, error)
	// Set はキーに値を保存する。既に存在する場合は上書きする。
	Set(ctx context.Context, key, value string) error
	// Delete はキーを削除する。存在しない場合は何もしない。
	Delete(ctx context.Context, key string) error
}

// MemoryStore はプロセス内のメモリに値とイベント履歴を保持するStore。
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	events []event.Event
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore は空のMemoryStoreを生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get はキーに対応する値を返す。
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set はキーに値を保存する。
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete はキーを削除する。
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
