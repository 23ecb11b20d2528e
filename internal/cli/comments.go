package cli

import (
	"github.com/nao1215/forum/internal/app"
	"github.com/spf13/cobra"
)

func (r *Runner) commentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "コメントを操作する",
	}

	list := &cobra.Command{
		Use:   "list <post-id>",
		Short: "投稿のコメント一覧を取得する",
		Args:  cobra.ExactArgs(1),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			postID, err := parseID("post-id", args[0])
			if err != nil {
				return err
			}
			comments, err := a.Client.GetPostComments(cmd.Context(), postID)
			if err != nil {
				return err
			}
			return r.printJSON(comments)
		}),
	}

	create := &cobra.Command{
		Use:   "create <post-id> <content>",
		Short: "投稿にコメントする",
		Args:  cobra.ExactArgs(2),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			postID, err := parseID("post-id", args[0])
			if err != nil {
				return err
			}
			comment, err := a.Client.CreateComment(cmd.Context(), postID, args[1])
			if err != nil {
				return err
			}
			return r.printJSON(comment)
		}),
	}

	update := &cobra.Command{
		Use:   "update <id> <content>",
		Short: "コメントを更新する",
		Args:  cobra.ExactArgs(2),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			comment, err := a.Client.UpdateComment(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			return r.printJSON(comment)
		}),
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "コメントを削除する",
		Args:  cobra.ExactArgs(1),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			resp, err := a.Client.DeleteComment(cmd.Context(), id)
			if err != nil {
				return err
			}
			return r.printJSON(resp)
		}),
	}

	like := &cobra.Command{
		Use:   "like <id>",
		Short: "コメントへのいいねを切り替える",
		Args:  cobra.ExactArgs(1),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			resp, err := a.Client.ToggleCommentLike(cmd.Context(), id)
			if err != nil {
				return err
			}
			return r.printJSON(resp)
		}),
	}

	cmd.AddCommand(list, create, update, del, like)
	return cmd
}
