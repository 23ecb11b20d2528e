// Package cli はforumコマンドのサブコマンドを提供する。
//
// 各サブコマンドはバックエンドの応答をインデント付きJSONで標準出力に書き出す。
// コマンドの実行中にバックエンドが401を返した場合は、セッションフラグを解除して
// ログイン画面へ遷移したことを標準エラー出力に表示する。
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nao1215/forum/internal/app"
	"github.com/nao1215/forum/internal/config"
	"github.com/nao1215/forum/internal/logging"
	"github.com/nao1215/forum/pkg/jsonx"
	"github.com/spf13/cobra"
)

// SessionExpiredMessage はセッション失効時に標準エラー出力へ表示するメッセージ。
const SessionExpiredMessage = "session expired, navigated to /login"

// Runner はforumコマンドの実行状態を保持する。
type Runner struct {
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
	appOpts []app.Option

	app *app.App
}

// Option はRunnerの設定を変更する関数。
type Option func(*Runner)

// WithOutput は標準出力と標準エラー出力の書き込み先を設定する。
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithGetenv は環境変数の参照方法を差し替える。
func WithGetenv(getenv func(string) string) Option {
	return func(r *Runner) {
		r.getenv = getenv
	}
}

// WithAppOptions はAppの生成オプションを追加する。
func WithAppOptions(opts ...app.Option) Option {
	return func(r *Runner) {
		r.appOpts = append(r.appOpts, opts...)
	}
}

// NewRunner は新しいRunnerを生成する。
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run はargsでforumコマンドを実行する。
// 実行後にAppを閉じ、セッションが失効していればその旨を表示する。
func (r *Runner) Run(ctx context.Context, args []string) error {
	cmd := r.rootCommand()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if r.app != nil {
		if r.app.SessionExpired() {
			fmt.Fprintln(r.stderr, SessionExpiredMessage)
		}
		if closeErr := r.app.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("セッション保存先のクローズに失敗: %w", closeErr)
		}
		r.app = nil
	}
	return err
}

// rootCommand はforumのルートコマンドを組み立てる。
func (r *Runner) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "forum",
		Short:         "フォーラムバックエンドのクライアント",
		Long:          "forum はフォーラムバックエンド（投稿・コメント・いいね・プロフィール）を操作するクライアントです。",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(r.stdout)
	cmd.SetErr(r.stderr)
	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		r.loginCommand(),
		r.registerCommand(),
		r.logoutCommand(),
		r.meCommand(),
		r.whoamiCommand(),
		r.postsCommand(),
		r.commentsCommand(),
		r.usersCommand(),
		r.historyCommand(),
		r.openCommand(),
		r.serveCommand(),
	)
	return cmd
}

// setup は設定とロガーを読み込み、Appを生成する。各サブコマンドの最初に呼び出す。
func (r *Runner) setup(cmd *cobra.Command) (*app.App, error) {
	if r.app != nil {
		return r.app, nil
	}

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, err := logging.Setup(cfg.LogLevel, r.stderr)
	if err != nil {
		return nil, err
	}

	opts := append([]app.Option{app.WithLogger(logger)}, r.appOpts...)
	a, err := app.New(cmd.Context(), cfg, opts...)
	if err != nil {
		return nil, err
	}
	r.app = a
	return a, nil
}

// withApp はAppを生成してからfnを実行するRunE関数を返す。
func (r *Runner) withApp(fn func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := r.setup(cmd)
		if err != nil {
			return err
		}
		return fn(cmd, a, args)
	}
}

// printJSON はvをインデント付きJSONで標準出力に書き出す。
func (r *Runner) printJSON(v any) error {
	out, err := jsonx.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("出力のシリアライズに失敗: %w", err)
	}
	_, err = fmt.Fprintln(r.stdout, string(out))
	return err
}
