package debate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lorenzotomasdiez/llm-debate/internal/llm"
	"github.com/sirupsen/logrus"
)

var speakingOrder = []Role{Proponent, Opponent}

// Engine runs the fixed phase sequence of a Profile. It holds no per-run
// state, so one Engine can serve consecutive runs.
type Engine struct {
	llm     LLMClient
	judge   Judger
	profile *Profile
	aliases AliasResolver
	log     *logrus.Logger
	now     func() time.Time
	OnTurn  func(Turn)
	OnPhase func(Phase)
}

// NewEngine creates a debate engine. aliases may be nil, in which case model
// ids are used verbatim.
func NewEngine(llm LLMClient, judge Judger, profile *Profile, aliases AliasResolver) *Engine {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Engine{
		llm:     llm,
		judge:   judge,
		profile: profile,
		aliases: aliases,
		log:     log,
		now:     time.Now,
	}
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(log *logrus.Logger) {
	if log != nil {
		e.log = log
	}
}

// Profile returns the profile the engine runs.
func (e *Engine) Profile() *Profile { return e.profile }

// Run executes one debate. Validation failures return a nil Result and make
// no model calls. A failed call aborts the remaining phases; the Result then
// holds the completed turns and a failure message instead of a verdict, and
// the error is returned alongside it.
func (e *Engine) Run(ctx context.Context, topic string, roles Assignment) (*Result, error) {
	if err := Validate(topic, roles); err != nil {
		return nil, err
	}
	topic = strings.TrimSpace(topic)
	header, err := e.profile.Header(topic)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ID:           uuid.NewString(),
		Topic:        topic,
		Profile:      e.profile.Name,
		Roles:        roles,
		Transcript:   &Transcript{Topic: topic, Header: header},
		StartedAt:    e.now(),
		FailureLabel: e.profile.Prompts.SystemLabel,
	}
	log := e.log.WithField("run", result.ID)
	log.WithField("topic", topic).Info("debate started")

	for _, phase := range e.profile.Phases {
		e.phase(phase)
		for _, role := range speakingOrder {
			if err := e.turn(ctx, result, phase, role); err != nil {
				return e.abort(result, log, err)
			}
		}
	}

	e.phase(Judgment)
	if err := ctx.Err(); err != nil {
		return e.abort(result, log, err)
	}
	verdict, err := e.judge.Deliberate(ctx, e.resolve(roles.Judge), result.Transcript)
	if err != nil {
		return e.abort(result, log, fmt.Errorf("judge: %w", err))
	}
	verdict.Model = roles.Judge
	result.Verdict = verdict
	result.FinishedAt = e.now()
	log.WithField("outcome", verdict.Outcome).Info("debate finished")
	return result, nil
}

func (e *Engine) turn(ctx context.Context, result *Result, phase Phase, role Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := result.Transcript
	quoted := ""
	if phase != Opening {
		var prev Turn
		var ok bool
		if e.profile.Quote == QuotePreviousPhase {
			prev, ok = t.LastByBefore(role.Opposing(), phase, e.profile.Phases)
		} else {
			prev, ok = t.LastBy(role.Opposing())
		}
		if ok {
			quoted = prev.Content
		}
	}

	prompt, system, err := e.profile.TurnPrompt(phase, role, result.Topic, quoted)
	if err != nil {
		return err
	}
	model := result.Roles.Model(role)
	resolved := e.resolve(model)

	content, err := e.llm.Invoke(ctx, resolved, prompt, system)
	if err != nil {
		return fmt.Errorf("%s (%s): %w", role, phase, err)
	}

	turn := Turn{
		Phase:    phase,
		Role:     role,
		Model:    model,
		Resolved: resolved,
		Label:    e.profile.TurnLabel(phase, role, model),
		Prompt:   prompt,
		System:   system,
		Content:  content,
	}
	t.append(turn)
	e.log.WithFields(logrus.Fields{
		"run":   result.ID,
		"phase": phase.String(),
		"role":  string(role),
		"model": resolved,
	}).Info("turn complete")
	if e.OnTurn != nil {
		e.OnTurn(turn)
	}
	return nil
}

func (e *Engine) abort(result *Result, log *logrus.Entry, err error) (*Result, error) {
	result.Failure = e.profile.Prompts.FailurePrefix + userMessage(err)
	result.FinishedAt = e.now()

	entry := log.WithField("turns", len(result.Transcript.Turns))
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		entry = entry.WithFields(logrus.Fields{"kind": apiErr.Kind.String(), "detail": apiErr.Detail})
	}
	entry.Errorf("debate aborted: %v", err)
	return result, fmt.Errorf("debate: %w", err)
}

func (e *Engine) phase(p Phase) {
	if e.OnPhase != nil {
		e.OnPhase(p)
	}
}

func (e *Engine) resolve(model string) string {
	if e.aliases == nil {
		return model
	}
	return e.aliases.Resolve(model)
}

// userMessage is the text shown in place of the verdict: the classified
// message for model failures, the error text otherwise.
func userMessage(err error) string {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
