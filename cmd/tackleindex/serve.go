package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/poku-e/tackleindex/internal/page"
	"github.com/poku-e/tackleindex/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [site-dir|page.html]",
		Short: "Preview a site with catalog tables built on each request",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			if addr == "" {
				addr = a.cfg.Serve.Addr
			}
			opts, err := page.OptionsFrom(a.cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(root, opts, a.log)
			a.log.WithField("root", root).Info("serving catalog site")
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at http://%s (Ctrl+C to stop)\n", root, displayAddr(addr))
			return server.Serve(ctx, addr, srv.Handler(), a.log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config serve.addr)")
	return cmd
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
