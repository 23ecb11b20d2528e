package cli

import (
	"fmt"
	"strconv"

	"github.com/nao1215/forum/internal/app"
	"github.com/nao1215/forum/pkg/api"
	"github.com/spf13/cobra"
)

// parseID は位置引数を数値IDに変換する。
func parseID(name, s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s が数値ではありません: %q", name, s)
	}
	return id, nil
}

// addPageFlags は--skipと--limitを登録する。
func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("skip", 0, "読み飛ばす件数")
	cmd.Flags().Int("limit", 20, "取得する最大件数")
}

// pageOptions は--skipと--limitをページングオプションに変換する。
func pageOptions(cmd *cobra.Command) []api.PageOption {
	skip, _ := cmd.Flags().GetInt("skip")
	limit, _ := cmd.Flags().GetInt("limit")
	return []api.PageOption{api.WithSkip(skip), api.WithLimit(limit)}
}

func (r *Runner) postsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "投稿を操作する",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "投稿の一覧を取得する",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			posts, err := a.Client.GetPosts(cmd.Context(), pageOptions(cmd)...)
			if err != nil {
				return err
			}
			return r.printJSON(posts)
		}),
	}
	addPageFlags(list)

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "投稿の詳細を取得する",
		Args:  cobra.ExactArgs(1),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			post, err := a.Client.GetPost(cmd.Context(), id)
			if err != nil {
				return err
			}
			return r.printJSON(post)
		}),
	}

	create := &cobra.Command{
		Use:   "create <content>",
		Short: "投稿する",
		Args:  cobra.ExactArgs(1),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			post, err := a.Client.CreatePost(cmd.Context(), args[0], optionalString(cmd, "image-url"))
			if err != nil {
				return err
			}
			return r.printJSON(post)
		}),
	}
	create.Flags().String("image-url", "", "画像のURL")

	update := &cobra.Command{
		Use:   "update <id> <content>",
		Short: "投稿を更新する",
		Args:  cobra.ExactArgs(2),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			post, err := a.Client.UpdatePost(cmd.Context(), id, args[1], optionalString(cmd, "image-url"))
			if err != nil {
				return err
			}
			return r.printJSON(post)
		}),
	}
	update.Flags().String("image-url", "", "画像のURL")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "投稿を削除する",
		Args:  cobra.ExactArgs(1),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			resp, err := a.Client.DeletePost(cmd.Context(), id)
			if err != nil {
				return err
			}
			return r.printJSON(resp)
		}),
	}

	like := &cobra.Command{
		Use:   "like <id>",
		Short: "投稿へのいいねを切り替える",
		Args:  cobra.ExactArgs(1),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			resp, err := a.Client.TogglePostLike(cmd.Context(), id)
			if err != nil {
				return err
			}
			return r.printJSON(resp)
		}),
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "自分の投稿の一覧を取得する",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			posts, err := a.Client.GetMyPosts(cmd.Context())
			if err != nil {
				return err
			}
			return r.printJSON(posts)
		}),
	}

	cmd.AddCommand(list, get, create, update, del, like, mine)
	return cmd
}
