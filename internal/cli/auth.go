package cli

import (
	"errors"
	"fmt"

	"github.com/nao1215/forum/internal/app"
	"github.com/nao1215/forum/pkg/api"
	"github.com/spf13/cobra"
)

// passwordEnv はパスワードを渡す環境変数名。
const passwordEnv = "FORUM_PASSWORD"

// password は--passwordフラグまたは環境変数からパスワードを取得する。
func (r *Runner) password(cmd *cobra.Command) (string, error) {
	pw, _ := cmd.Flags().GetString("password")
	if pw == "" {
		pw = r.getenv(passwordEnv)
	}
	if pw == "" {
		return "", errors.New("パスワードが必要です（--password または " + passwordEnv + "）")
	}
	return pw, nil
}

func (r *Runner) loginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "ログインする",
		Args:  cobra.ExactArgs(1),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			pw, err := r.password(cmd)
			if err != nil {
				return err
			}
			resp, err := a.Login(cmd.Context(), args[0], pw)
			if err != nil {
				return fmt.Errorf("ログインに失敗: %w", err)
			}
			return r.printJSON(resp)
		}),
	}
	cmd.Flags().String("password", "", "パスワード（未指定の場合は "+passwordEnv+" を参照）")
	return cmd
}

func (r *Runner) registerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "ユーザーを登録してログインする",
		Args:  cobra.ExactArgs(1),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			pw, err := r.password(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			email, _ := flags.GetString("email")
			displayName, _ := flags.GetString("display-name")
			user := api.UserCreate{
				Username:    args[0],
				Email:       email,
				DisplayName: displayName,
				Bio:         optionalString(cmd, "bio"),
				AvatarURL:   optionalString(cmd, "avatar-url"),
				Password:    pw,
			}
			if user.DisplayName == "" {
				user.DisplayName = user.Username
			}
			resp, err := a.Register(cmd.Context(), user)
			if err != nil {
				return fmt.Errorf("ユーザー登録に失敗: %w", err)
			}
			return r.printJSON(resp)
		}),
	}
	cmd.Flags().String("email", "", "メールアドレス")
	cmd.Flags().String("display-name", "", "表示名（既定: ユーザー名）")
	cmd.Flags().String("bio", "", "自己紹介")
	cmd.Flags().String("avatar-url", "", "アバター画像のURL")
	cmd.Flags().String("password", "", "パスワード（未指定の場合は "+passwordEnv+" を参照）")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (r *Runner) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "ログアウトする",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			resp, err := a.Logout(cmd.Context())
			if err != nil {
				return fmt.Errorf("ログアウトに失敗: %w", err)
			}
			return r.printJSON(resp)
		}),
	}
}

func (r *Runner) meCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "ログイン中のユーザーをバックエンドから取得する",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			user, err := a.Client.GetCurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			return r.printJSON(user)
		}),
	}
}

func (r *Runner) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "ローカルのセッションフラグを表示する（通信しない）",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			value, ok, err := a.Session.Value(cmd.Context())
			if err != nil {
				return fmt.Errorf("セッションフラグの読み込みに失敗: %w", err)
			}
			if !ok {
				fmt.Fprintln(r.stdout, "not logged in")
				return nil
			}
			fmt.Fprintln(r.stdout, value)
			return nil
		}),
	}
}

// optionalString は明示的に指定されたフラグの値を返す。未指定の場合はnil。
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
