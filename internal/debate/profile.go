package debate

import (
	"fmt"
	"strings"
	"text/template"
)

// QuoteScope selects which opposing turn a rebuttal or closing prompt quotes.
type QuoteScope string

const (
	// QuoteLatest quotes the opposing role's most recent turn.
	QuoteLatest QuoteScope = "latest"
	// QuotePreviousPhase quotes the opposing role's turn from an earlier phase,
	// so both sides of a phase answer the same round of arguments.
	QuotePreviousPhase QuoteScope = "previous-phase"
)

// Built-in phase sequences.
var (
	ClassicPhases  = []Phase{Opening, Rebuttal}
	ExtendedPhases = []Phase{Opening, Rebuttal, Closing}
)

// Profile is a validated debate configuration: the speaking phases, the
// quoting rule and the compiled prompt templates. Judgment always follows
// the last speaking phase.
type Profile struct {
	Name    string
	Phases  []Phase
	Quote   QuoteScope
	Prompts PromptSet

	tmpl *template.Template
}

// NewProfile validates the phase list and compiles every template it needs.
func NewProfile(name string, phases []Phase, quote QuoteScope, prompts PromptSet) (*Profile, error) {
	if len(phases) == 0 {
		return nil, fmt.Errorf("debate: profile %q has no phases", name)
	}
	if phases[0] != Opening {
		return nil, fmt.Errorf("debate: profile %q must start with the opening phase", name)
	}
	for _, p := range phases {
		if p == Judgment || p < Opening || p > Closing {
			return nil, fmt.Errorf("debate: profile %q: %s is not a speaking phase", name, p)
		}
	}
	switch quote {
	case "":
		quote = QuoteLatest
	case QuoteLatest, QuotePreviousPhase:
	default:
		return nil, fmt.Errorf("debate: profile %q: unknown quote scope %q", name, quote)
	}

	tmpl := template.New(name).Option("missingkey=error")
	add := func(key, src string, required bool) error {
		if strings.TrimSpace(src) == "" {
			if required {
				return fmt.Errorf("debate: profile %q: template %s is empty", name, key)
			}
			return nil
		}
		if _, err := tmpl.New(key).Parse(src); err != nil {
			return fmt.Errorf("debate: profile %q: template %s: %w", name, key, err)
		}
		return nil
	}

	if err := add("topic_header", prompts.TopicHeader, true); err != nil {
		return nil, err
	}
	seen := map[Phase]bool{}
	for _, p := range phases {
		if seen[p] {
			continue
		}
		seen[p] = true
		for _, role := range []Role{Proponent, Opponent} {
			tt := prompts.Phase(p).Turn(role)
			if err := add(templateKey(p, role, "prompt"), tt.Prompt, true); err != nil {
				return nil, err
			}
			if err := add(templateKey(p, role, "system"), tt.System, false); err != nil {
				return nil, err
			}
		}
	}
	if err := add("judgment.prompt", prompts.Judgment.Prompt, true); err != nil {
		return nil, err
	}
	if err := add("judgment.system", prompts.Judgment.System, false); err != nil {
		return nil, err
	}

	return &Profile{
		Name:    name,
		Phases:  append([]Phase(nil), phases...),
		Quote:   quote,
		Prompts: prompts,
		tmpl:    tmpl,
	}, nil
}

// BuiltinProfile returns "classic" (opening, rebuttal) or "extended"
// (opening, rebuttal, closing) with the prompt set for lang.
func BuiltinProfile(name, lang string) (*Profile, error) {
	prompts, ok := LookupPrompts(lang)
	if !ok {
		return nil, fmt.Errorf("debate: unknown language %q", lang)
	}
	switch name {
	case "classic":
		return NewProfile(name, ClassicPhases, QuoteLatest, prompts)
	case "extended", "":
		return NewProfile("extended", ExtendedPhases, QuoteLatest, prompts)
	}
	return nil, fmt.Errorf("debate: unknown profile %q", name)
}

type promptData struct {
	Topic      string
	Opponent   string
	Transcript string
}

func templateKey(p Phase, role Role, part string) string {
	return p.String() + "." + string(role) + "." + part
}

func (p *Profile) render(key string, data promptData) (string, error) {
	if p.tmpl.Lookup(key) == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := p.tmpl.ExecuteTemplate(&sb, key, data); err != nil {
		return "", fmt.Errorf("debate: render %s: %w", key, err)
	}
	return sb.String(), nil
}

// Header renders the transcript header for topic.
func (p *Profile) Header(topic string) (string, error) {
	return p.render("topic_header", promptData{Topic: topic})
}

// TurnPrompt renders the prompt and system message for a speaking turn.
// quoted is the opposing argument the turn must answer (empty for openings).
func (p *Profile) TurnPrompt(phase Phase, role Role, topic, quoted string) (prompt, system string, err error) {
	data := promptData{Topic: topic, Opponent: quoted}
	if prompt, err = p.render(templateKey(phase, role, "prompt"), data); err != nil {
		return "", "", err
	}
	if system, err = p.render(templateKey(phase, role, "system"), data); err != nil {
		return "", "", err
	}
	return prompt, system, nil
}

// JudgmentPrompt renders the judge's prompt over the full transcript text.
func (p *Profile) JudgmentPrompt(topic, transcript string) (prompt, system string, err error) {
	data := promptData{Topic: topic, Transcript: transcript}
	if prompt, err = p.render("judgment.prompt", data); err != nil {
		return "", "", err
	}
	if system, err = p.render("judgment.system", data); err != nil {
		return "", "", err
	}
	return prompt, system, nil
}

// TurnLabel is the heading of a turn in the transcript, e.g. "Round 1 - For (model)".
func (p *Profile) TurnLabel(phase Phase, role Role, model string) string {
	return fmt.Sprintf("%s - %s (%s)", p.Prompts.Phase(phase).Title, p.Prompts.SideLabel(role), model)
}

// Banner is the announcement shown when phase starts.
func (p *Profile) Banner(phase Phase) string {
	if phase == Judgment {
		return p.Prompts.Judgment.Banner
	}
	return p.Prompts.Phase(phase).Banner
}
