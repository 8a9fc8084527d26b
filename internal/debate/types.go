package debate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Phase is one stage of the debate sequence.
type Phase int

const (
	Opening Phase = iota
	Rebuttal
	Closing
	Judgment
)

var phaseNames = []string{"opening", "rebuttal", "closing", "judgment"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// ParsePhase converts a phase name ("opening", "rebuttal", "closing", "judgment").
func ParsePhase(s string) (Phase, error) {
	for i, name := range phaseNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("debate: unknown phase %q", s)
}

// MarshalText lets phases appear by name in JSON output.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(b []byte) error {
	v, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Role is a debate participant.
type Role string

const (
	Proponent Role = "proponent"
	Opponent  Role = "opponent"
	Judge     Role = "judge"
)

// Opposing returns the other speaking role.
func (r Role) Opposing() Role {
	if r == Proponent {
		return Opponent
	}
	return Proponent
}

// Assignment maps each role to the model id (or alias) that plays it.
type Assignment struct {
	Proponent string `json:"proponent"`
	Opponent  string `json:"opponent"`
	Judge     string `json:"judge"`
}

// Model returns the model assigned to role.
func (a Assignment) Model(role Role) string {
	switch role {
	case Proponent:
		return a.Proponent
	case Opponent:
		return a.Opponent
	case Judge:
		return a.Judge
	}
	return ""
}

// Turn is one model invocation within a phase. Turns are never modified
// after they are appended to a Transcript.
type Turn struct {
	Phase    Phase  `json:"phase"`
	Role     Role   `json:"role"`
	Model    string `json:"model"`
	Resolved string `json:"resolved_model"`
	Label    string `json:"label"`
	Prompt   string `json:"prompt"`
	System   string `json:"system"`
	Content  string `json:"content"`
}

// Transcript holds the ordered turns of one run.
type Transcript struct {
	Topic  string `json:"topic"`
	Header string `json:"header"`
	Turns  []Turn `json:"turns"`
}

func (t *Transcript) append(turn Turn) {
	t.Turns = append(t.Turns, turn)
}

// Text renders the transcript the way it is shown to the judge and exported.
func (t *Transcript) Text() string {
	var sb strings.Builder
	sb.WriteString(t.Header)
	sb.WriteString("\n\n")
	for _, turn := range t.Turns {
		fmt.Fprintf(&sb, "%s:\n%s\n\n", turn.Label, turn.Content)
	}
	return sb.String()
}

// LastBy returns the most recent turn spoken by role.
func (t *Transcript) LastBy(role Role) (Turn, bool) {
	for i := len(t.Turns) - 1; i >= 0; i-- {
		if t.Turns[i].Role == role {
			return t.Turns[i], true
		}
	}
	return Turn{}, false
}

// LastByBefore returns role's most recent turn from a phase earlier than phase.
func (t *Transcript) LastByBefore(role Role, phase Phase, order []Phase) (Turn, bool) {
	idx := phaseIndex(order, phase)
	for i := len(t.Turns) - 1; i >= 0; i-- {
		turn := t.Turns[i]
		if turn.Role == role && phaseIndex(order, turn.Phase) < idx {
			return turn, true
		}
	}
	return Turn{}, false
}

func phaseIndex(order []Phase, p Phase) int {
	for i, q := range order {
		if q == p {
			return i
		}
	}
	return len(order)
}

// Outcome is the side the judge declared the winner, when it can be parsed.
type Outcome string

const (
	OutcomeProponent Outcome = "proponent"
	OutcomeOpponent  Outcome = "opponent"
	OutcomeTie       Outcome = "tie"
	OutcomeUndecided Outcome = "undecided"
)

// Verdict is the judge's output over a complete transcript.
type Verdict struct {
	Model   string  `json:"model"`
	Label   string  `json:"label"`
	Prompt  string  `json:"prompt"`
	Text    string  `json:"text"`
	Outcome Outcome `json:"outcome"`
}

// LLMClient is the Model Client contract the engine depends on.
type LLMClient interface {
	Invoke(ctx context.Context, model, prompt, systemMessage string) (string, error)
}

// AliasResolver maps caller-facing model names to provider model ids.
type AliasResolver interface {
	Resolve(model string) string
}

// Judger produces the verdict for a finished transcript.
type Judger interface {
	Deliberate(ctx context.Context, model string, transcript *Transcript) (*Verdict, error)
}

// Result is the outcome of one run. Exactly one of Verdict and Failure is set
// once the run has finished.
type Result struct {
	ID         string      `json:"id"`
	Topic      string      `json:"topic"`
	Profile    string      `json:"profile"`
	Roles      Assignment  `json:"roles"`
	Transcript *Transcript `json:"transcript"`
	Verdict    *Verdict    `json:"verdict,omitempty"`
	Failure    string      `json:"failure,omitempty"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`

	// FailureLabel heads the failure message in Export.
	FailureLabel string `json:"failure_label,omitempty"`
}

// Succeeded reports whether the run produced a verdict.
func (r *Result) Succeeded() bool { return r.Verdict != nil }

// Export renders the transcript followed by the verdict, or by the system
// failure message when the run aborted.
func (r *Result) Export() string {
	text := r.Transcript.Text()
	if r.Verdict != nil {
		return text + r.Verdict.Label + ":\n" + r.Verdict.Text
	}
	if r.Failure != "" {
		label := r.FailureLabel
		if label == "" {
			label = "System"
		}
		return text + label + ":\n" + r.Failure
	}
	return text
}

// Clone returns a copy of r that shares no mutable state with it.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	if r.Transcript != nil {
		t := *r.Transcript
		t.Turns = append([]Turn(nil), r.Transcript.Turns...)
		c.Transcript = &t
	}
	if r.Verdict != nil {
		v := *r.Verdict
		c.Verdict = &v
	}
	return &c
}

// Validate checks a run request before any model is called.
func Validate(topic string, roles Assignment) error {
	if strings.TrimSpace(topic) == "" {
		return ErrEmptyTopic
	}
	if roles.Proponent == "" || roles.Opponent == "" || roles.Judge == "" {
		return ErrMissingModel
	}
	return nil
}

var (
	ErrEmptyTopic    = errors.New("debate: topic is required")
	ErrMissingModel  = errors.New("debate: every role needs a model")
	ErrRunInProgress = errors.New("debate: a run is already in progress")
)
