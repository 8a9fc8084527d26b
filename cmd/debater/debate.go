package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/lorenzotomasdiez/llm-debate/internal/debate"
	"github.com/lorenzotomasdiez/llm-debate/internal/output"
	"github.com/spf13/cobra"
)

func newDebateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debate",
		Short: "Run one debate on a topic",
		RunE:  runDebate,
	}
	cmd.Flags().String("topic", "", "Debate topic (required)")
	cmd.Flags().String("pro", "llama-4-maverick", "Model (or alias) arguing for the topic")
	cmd.Flags().String("con", "deepseek-r1-0528", "Model (or alias) arguing against the topic")
	cmd.Flags().String("judge", "llama3-70b-8192", "Model (or alias) judging the debate")
	cmd.Flags().String("name", "", "Override output folder name (default: auto-slug from topic)")
	cmd.MarkFlagRequired("topic")
	return cmd
}

func runDebate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	name, _ := cmd.Flags().GetString("name")
	roles := debate.Assignment{}
	roles.Proponent, _ = cmd.Flags().GetString("pro")
	roles.Opponent, _ = cmd.Flags().GetString("con")
	roles.Judge, _ = cmd.Flags().GetString("judge")
	if err := debate.Validate(topic, roles); err != nil {
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	// Setup context with Ctrl+C cancellation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slug := name
	if slug == "" {
		slug = output.GenerateSlug(topic)
	}
	outDir, err := output.CreateOutputDir(a.cfg.OutputDir, slug)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	writer := output.NewWriter(outDir)

	fmt.Printf("Debate: %s\n", topic)
	fmt.Printf("For: %s | Against: %s | Judge: %s | Profile: %s | Output: %s\n",
		roles.Proponent, roles.Opponent, roles.Judge, a.profile.Name, outDir)

	engine := a.engine()
	engine.OnPhase = func(phase debate.Phase) {
		output.PrintPhase(phase, a.profile.Banner(phase))
		writer.Log("phase " + phase.String())
	}
	engine.OnTurn = func(turn debate.Turn) {
		output.PrintTurn(turn)
		writer.Log(fmt.Sprintf("%s (%s): %d chars", turn.Label, turn.Resolved, len(turn.Content)))
	}

	result, runErr := engine.Run(ctx, topic, roles)
	if result == nil {
		return runErr
	}

	if err := writer.WriteText(result); err != nil {
		return err
	}
	if err := writer.WriteJSON(result); err != nil {
		return err
	}
	if err := writer.WriteMarkdown(result); err != nil {
		return err
	}

	if runErr != nil {
		output.PrintFailure(a.profile.Prompts.SystemLabel, result.Failure)
		writer.Log(result.Failure)
		if errors.Is(runErr, context.Canceled) {
			fmt.Printf("\nDebate cancelled. Partial transcript saved to: %s\n", outDir)
			return nil
		}
		return fmt.Errorf("debate aborted, partial transcript saved to %s: %w", outDir, runErr)
	}

	output.PrintVerdict(result.Verdict)
	fmt.Printf("\nDebate complete. Output saved to: %s\n", outDir)
	return nil
}
