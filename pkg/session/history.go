package session

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/nao1215/forum/pkg/event"
)

// DefaultHistoryLimit はEventsで件数を指定しなかった場合の取得件数。
const DefaultHistoryLimit = 50

// eventTimeLayout はcreated_atの保存形式。固定長のため文字列比較で時刻順になる。
const eventTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// EventLog はセッションイベントを追記専用で記録する履歴。
type EventLog interface {
	// AppendEvent はイベントを履歴の末尾に追記する。
	AppendEvent(ctx context.Context, e event.Event) error
	// Events は条件に一致するイベントを新しい順に返す。
	Events(ctx context.Context, filter HistoryFilter) ([]event.Event, error)
}

// HistoryFilter はEventsの絞り込み条件。
type HistoryFilter struct {
	// Type はイベントの種類。空の場合はすべての種類を返す。
	Type event.Type
	// Since はこの日時以降に作成されたイベントのみを返す。ゼロ値の場合は制限しない。
	Since time.Time
	// Limit は最大件数。0以下の場合はDefaultHistoryLimit。
	Limit int
}

func (f HistoryFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultHistoryLimit
	}
	return f.Limit
}

func (f HistoryFilter) match(e event.Event) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	return f.Since.IsZero() || !e.CreatedAt.Before(f.Since)
}

var (
	_ EventLog = (*MemoryStore)(nil)
	_ EventLog = (*SQLiteStore)(nil)
)

// AppendEvent はイベントをメモリ上の履歴に追記する。
func (s *MemoryStore) AppendEvent(_ context.Context, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// Events はメモリ上の履歴を新しい順に返す。
func (s *MemoryStore) Events(_ context.Context, filter HistoryFilter) ([]event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]event.Event, 0, min(len(s.events), filter.limit()))
	for _, e := range slices.Backward(s.events) {
		if len(out) == filter.limit() {
			break
		}
		if filter.match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// AppendEvent はイベントをsession_eventsテーブルに追記する。
// seqは追記順の連番で、同時刻のイベントの並びを保つ。
func (s *SQLiteStore) AppendEvent(ctx context.Context, e event.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_events (id, seq, event_type, reason, created_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM session_events), ?, ?, ?)
	`, e.ID, string(e.Type), e.Reason, e.CreatedAt.UTC().Format(eventTimeLayout))
	if err != nil {
		return fmt.Errorf("イベントの追記に失敗 type=%s: %w", e.Type, err)
	}
	return nil
}

// Events はsession_eventsテーブルから新しい順にイベントを返す。
func (s *SQLiteStore) Events(ctx context.Context, filter HistoryFilter) ([]event.Event, error) {
	query := "SELECT id, event_type, reason, created_at FROM session_events WHERE 1 = 1"
	var args []any
	if filter.Type != "" {
		query += " AND event_type = ?"
		args = append(args, string(filter.Type))
	}
	if !filter.Since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.Since.UTC().Format(eventTimeLayout))
	}
	query += " ORDER BY seq DESC LIMIT ?"
	args = append(args, filter.limit())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("イベントの取得に失敗: %w", err)
	}
	defer rows.Close()

	var out []event.Event
	for rows.Next() {
		var (
			e         event.Event
			eventType string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &eventType, &e.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("イベントの読み込みに失敗: %w", err)
		}
		e.Type = event.Type(eventType)
		if e.CreatedAt, err = time.Parse(eventTimeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("作成日時の解析に失敗 id=%s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("イベントの読み込みに失敗: %w", err)
	}
	return out, nil
}
