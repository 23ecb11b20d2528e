package cli

import (
	"errors"

	"github.com/nao1215/forum/internal/app"
	"github.com/nao1215/forum/pkg/api"
	"github.com/spf13/cobra"
)

func (r *Runner) usersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "ユーザーを操作する",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "ユーザーの一覧を取得する",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			users, err := a.Client.GetUsers(cmd.Context(), pageOptions(cmd)...)
			if err != nil {
				return err
			}
			return r.printJSON(users)
		}),
	}
	addPageFlags(list)

	get := &cobra.Command{
		Use:   "get <username>",
		Short: "ユーザーのプロフィールを取得する",
		Args:  cobra.ExactArgs(1),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			profile, err := a.Client.GetUserProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return r.printJSON(profile)
		}),
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "自分のプロフィールを更新する",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			u := api.UserUpdate{
				DisplayName: optionalString(cmd, "display-name"),
				Bio:         optionalString(cmd, "bio"),
				AvatarURL:   optionalString(cmd, "avatar-url"),
			}
			if u.DisplayName == nil && u.Bio == nil && u.AvatarURL == nil {
				return errors.New("更新する項目を1つ以上指定してください")
			}
			user, err := a.Client.UpdateProfile(cmd.Context(), u)
			if err != nil {
				return err
			}
			return r.printJSON(user)
		}),
	}
	update.Flags().String("display-name", "", "表示名")
	update.Flags().String("bio", "", "自己紹介")
	update.Flags().String("avatar-url", "", "アバター画像のURL")

	cmd.AddCommand(list, get, update)
	return cmd
}
