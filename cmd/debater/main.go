package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "debater",
		Short: "Two-model debate orchestrator with an impartial judge",
		Long: "Runs a structured debate between two LLMs (opening, rebuttal and optional closing rounds) " +
			"and asks a third model to judge it. Models are reached through a credential proxy or directly " +
			"with a rotating list of API keys.",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("mode", "", "How to reach the provider: proxy or direct (overrides DEBATE_MODE)")
	flags.String("proxy-url", "", "Credential proxy endpoint (overrides DEBATE_PROXY_URL)")
	flags.String("provider", "", "Upstream provider: openrouter or groq (overrides DEBATE_PROVIDER)")
	flags.Duration("timeout", 0, "Per-call model timeout (overrides DEBATE_TIMEOUT)")
	flags.String("profile", "", "YAML debate profile (overrides DEBATE_PROFILE)")
	flags.String("output-dir", "", "Output directory for results (overrides DEBATE_OUTPUT_DIR)")
	flags.String("env-file", ".env", "Environment file loaded before configuration")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")

	root.AddCommand(newDebateCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newModelsCmd())
	return root
}
