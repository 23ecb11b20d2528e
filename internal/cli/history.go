package cli

import (
	"fmt"
	"time"

	"github.com/nao1215/forum/internal/app"
	"github.com/nao1215/forum/pkg/event"
	"github.com/nao1215/forum/pkg/session"
	"github.com/spf13/cobra"
)

func (r *Runner) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "記録済みのセッションイベントを新しい順に表示する",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			filter, err := historyFilter(cmd)
			if err != nil {
				return err
			}
			events, err := a.History(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if events == nil {
				events = []event.Event{}
			}
			return r.printJSON(events)
		}),
	}
	cmd.Flags().String("type", "", "イベントの種類（SessionStarted, SessionEnded, SessionExpired）")
	cmd.Flags().Duration("since", 0, "指定した期間内のイベントのみを表示する（例: 24h）")
	cmd.Flags().Int("limit", session.DefaultHistoryLimit, "表示する最大件数")
	return cmd
}

// historyFilter はhistoryコマンドのフラグを絞り込み条件に変換する。
func historyFilter(cmd *cobra.Command) (session.HistoryFilter, error) {
	eventType, _ := cmd.Flags().GetString("type")
	since, _ := cmd.Flags().GetDuration("since")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := session.HistoryFilter{Type: event.Type(eventType), Limit: limit}
	switch filter.Type {
	case "", event.TypeSessionStarted, event.TypeSessionEnded, event.TypeSessionExpired:
	default:
		return filter, fmt.Errorf("不明なイベントの種類です: %q", eventType)
	}
	if since > 0 {
		filter.Since = time.Now().Add(-since)
	}
	return filter, nil
}
