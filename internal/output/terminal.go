package output

import (
	"fmt"

	"github.com/lorenzotomasdiez/llm-debate/internal/debate"
)

const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	AnsiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// Colorize wraps s with an ANSI color code and reset.
func Colorize(color, s string) string { return color + s + ansiReset }

// Bold wraps s with ANSI bold and reset.
func Bold(s string) string { return ansiBold + s + ansiReset }

// PrintTurn prints a formatted turn to stdout.
func PrintTurn(turn debate.Turn) {
	fmt.Printf("%s\n%s\n\n",
		Colorize(ansiYellow, Bold(turn.Label+":")),
		turn.Content,
	)
}

// PrintPhase prints a phase banner. Judgment is shown in magenta.
func PrintPhase(phase debate.Phase, banner string) {
	color := ansiCyan
	if phase == debate.Judgment {
		color = AnsiMagenta
	}
	if banner == "" {
		banner = phase.String()
	}
	fmt.Printf("\n%s\n\n", Colorize(ansiBold+color, "=== "+banner+" ==="))
}

// PrintVerdict prints the judge's verdict and the parsed outcome.
func PrintVerdict(v *debate.Verdict) {
	fmt.Printf("%s\n%s\n\n", Colorize(ansiBold+ansiGreen, v.Label+":"), v.Text)
	color := ansiYellow
	if v.Outcome == debate.OutcomeUndecided {
		color = ansiRed
	}
	fmt.Printf("Outcome: %s\n", Colorize(ansiBold+color, string(v.Outcome)))
}

// PrintFailure prints the message that replaces the verdict of an aborted run.
func PrintFailure(label, message string) {
	fmt.Printf("%s\n%s\n", Colorize(ansiBold+ansiRed, label+":"), message)
}
