package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lorenzotomasdiez/llm-debate/internal/debate"
	"github.com/lorenzotomasdiez/llm-debate/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the credential proxy and the debate API",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (overrides DEBATE_ADDR)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = a.cfg.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx, server.StartOpts{
		Addr:    addr,
		Session: debate.NewSession(a.engine()),
		Aliases: a.aliases,
		Proxies: a.proxies(),
		Log:     a.log,
		Out:     cmd.OutOrStdout(),
	})
}
