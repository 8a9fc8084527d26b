package verdict

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/lorenzotomasdiez/llm-debate/internal/debate"
)

var verdictLineRe = regexp.MustCompile(`(?im)^\W*VERDICT\W*:\s*(.+?)\s*$`)

// Judge asks a model to weigh a finished transcript.
type Judge struct {
	llm     debate.LLMClient
	profile *debate.Profile
}

// NewJudge creates a Judge that phrases its prompt with profile.
func NewJudge(llm debate.LLMClient, profile *debate.Profile) *Judge {
	return &Judge{llm: llm, profile: profile}
}

// Deliberate implements debate.Judger. The judge is called exactly once.
func (j *Judge) Deliberate(ctx context.Context, model string, transcript *debate.Transcript) (*debate.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("verdict: %w", err)
	}
	prompt, system, err := j.profile.JudgmentPrompt(transcript.Topic, transcript.Text())
	if err != nil {
		return nil, fmt.Errorf("verdict: %w", err)
	}
	text, err := j.llm.Invoke(ctx, model, prompt, system)
	if err != nil {
		return nil, fmt.Errorf("verdict: %w", err)
	}
	return &debate.Verdict{
		Model:   model,
		Label:   j.profile.Prompts.Judgment.Title,
		Prompt:  prompt,
		Text:    text,
		Outcome: ParseOutcome(text, j.profile.Prompts),
	}, nil
}

// ParseOutcome reads the last "VERDICT: ..." line of a judge's answer.
// Only the first word after the colon decides the outcome. It never fails;
// anything it cannot place is OutcomeUndecided.
func ParseOutcome(text string, prompts debate.PromptSet) debate.Outcome {
	matches := verdictLineRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return debate.OutcomeUndecided
	}
	word := firstWord(matches[len(matches)-1][1])

	switch {
	case word == "":
		return debate.OutcomeUndecided
	case word == "tie" || word == "draw":
		return debate.OutcomeTie
	case word == "against" || word == "opponent" || word == firstWord(prompts.OpponentLabel):
		return debate.OutcomeOpponent
	case word == "for" || word == "proponent" || word == firstWord(prompts.ProponentLabel):
		return debate.OutcomeProponent
	}
	return debate.OutcomeUndecided
}

// firstWord lowercases the first run of letters, marks and digits in s.
func firstWord(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[0])
}
