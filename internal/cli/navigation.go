package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/nao1215/forum/internal/app"
	"github.com/nao1215/forum/internal/web"
	"github.com/spf13/cobra"
)

// openResult はopenコマンドの出力。
type openResult struct {
	Path           string            `json:"path"`
	Route          string            `json:"route"`
	Component      string            `json:"component"`
	Params         map[string]string `json:"params"`
	RedirectedFrom string            `json:"redirected_from,omitempty"`
}

func (r *Runner) openCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "ガードを通してパスへナビゲーションし、確定したルートを表示する",
		Args:  cobra.ExactArgs(1),
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			loc, err := a.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if loc.RedirectedFrom != "" {
				fmt.Fprintf(r.stderr, "redirected to %s\n", loc.Path)
			}
			return r.printJSON(openResult{
				Path:           loc.Path,
				Route:          loc.Name(),
				Component:      loc.Route.Component,
				Params:         loc.Params,
				RedirectedFrom: loc.RedirectedFrom,
			})
		}),
	}
}

func (r *Runner) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "ナビゲーションホストを起動する",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			addr := a.Config.Web.Addr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return web.NewServer(a, addr).Run(ctx)
		}),
	}
	cmd.Flags().String("addr", "", "待ち受けアドレス（既定: web.addr）")
	return cmd
}
