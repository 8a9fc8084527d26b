package debate

// TurnTemplate holds the text/template sources for one speaking turn.
// Templates see .Topic, .Opponent (the quoted opposing argument) and
// .Transcript (judgment only).
type TurnTemplate struct {
	Prompt string `yaml:"prompt" json:"prompt"`
	System string `yaml:"system" json:"system"`
}

// PhaseTemplates is the wording for one speaking phase.
type PhaseTemplates struct {
	Title     string       `yaml:"title" json:"title"`
	Banner    string       `yaml:"banner" json:"banner"`
	Proponent TurnTemplate `yaml:"proponent" json:"proponent"`
	Opponent  TurnTemplate `yaml:"opponent" json:"opponent"`
}

// Turn returns the template for role.
func (p PhaseTemplates) Turn(role Role) TurnTemplate {
	if role == Opponent {
		return p.Opponent
	}
	return p.Proponent
}

// JudgmentTemplates is the wording for the verdict.
type JudgmentTemplates struct {
	Title  string `yaml:"title" json:"title"`
	Banner string `yaml:"banner" json:"banner"`
	Prompt string `yaml:"prompt" json:"prompt"`
	System string `yaml:"system" json:"system"`
}

// PromptSet is every piece of language-specific text a run needs.
type PromptSet struct {
	TopicHeader    string            `yaml:"topic_header" json:"topic_header"`
	ProponentLabel string            `yaml:"proponent_label" json:"proponent_label"`
	OpponentLabel  string            `yaml:"opponent_label" json:"opponent_label"`
	SystemLabel    string            `yaml:"system_label" json:"system_label"`
	FailurePrefix  string            `yaml:"failure_prefix" json:"failure_prefix"`
	Opening        PhaseTemplates    `yaml:"opening" json:"opening"`
	Rebuttal       PhaseTemplates    `yaml:"rebuttal" json:"rebuttal"`
	Closing        PhaseTemplates    `yaml:"closing" json:"closing"`
	Judgment       JudgmentTemplates `yaml:"judgment" json:"judgment"`
}

// Phase returns the templates for a speaking phase.
func (s PromptSet) Phase(p Phase) PhaseTemplates {
	switch p {
	case Rebuttal:
		return s.Rebuttal
	case Closing:
		return s.Closing
	}
	return s.Opening
}

// SideLabel names role in transcript labels.
func (s PromptSet) SideLabel(role Role) string {
	if role == Opponent {
		return s.OpponentLabel
	}
	return s.ProponentLabel
}

// EnglishPrompts is the default prompt set.
func EnglishPrompts() PromptSet {
	return PromptSet{
		TopicHeader:    "Debate topic: {{.Topic}}",
		ProponentLabel: "For",
		OpponentLabel:  "Against",
		SystemLabel:    "System",
		FailurePrefix:  "An error occurred: ",
		Opening: PhaseTemplates{
			Title:  "Round 1",
			Banner: "Round 1 is starting...",
			Proponent: TurnTemplate{
				Prompt: `You are a skilled speaker. Give strong arguments in favour of the topic "{{.Topic}}".`,
				System: "You are a debater arguing in favour of the topic. Answer in English in at most 300 words.",
			},
			Opponent: TurnTemplate{
				Prompt: `You are a skilled speaker. Give strong arguments against the topic "{{.Topic}}".`,
				System: "You are a debater arguing against the topic. Answer in English in at most 300 words.",
			},
		},
		Rebuttal: PhaseTemplates{
			Title:  "Round 2",
			Banner: "Round 2 (rebuttals) is starting...",
			Proponent: TurnTemplate{
				Prompt: `"{{.Opponent}}" - rebut this argument from your opponent in favour of "{{.Topic}}" and strengthen your own position.`,
				System: "You are a debater rebutting your opponent's argument and strengthening your own case. Answer in English in at most 300 words.",
			},
			Opponent: TurnTemplate{
				Prompt: `"{{.Opponent}}" - rebut this argument from your opponent against "{{.Topic}}" and strengthen your own position.`,
				System: "You are a debater rebutting your opponent's argument and strengthening your own case. Answer in English in at most 300 words.",
			},
		},
		Closing: PhaseTemplates{
			Title:  "Round 3",
			Banner: "Round 3 (closing statements) is starting...",
			Proponent: TurnTemplate{
				Prompt: `"{{.Opponent}}" - answer this rebuttal from your opponent with your closing statement in favour of "{{.Topic}}".`,
				System: "You are a debater giving the final answer to your opponent's rebuttal. Answer in English in at most 300 words.",
			},
			Opponent: TurnTemplate{
				Prompt: `"{{.Opponent}}" - answer this rebuttal from your opponent with your closing statement against "{{.Topic}}".`,
				System: "You are a debater giving the final answer to your opponent's rebuttal. Answer in English in at most 300 words.",
			},
		},
		Judgment: JudgmentTemplates{
			Title:  "Judge's verdict",
			Banner: "Judgment is starting...",
			Prompt: "Below is the complete transcript of a debate. Debate topic: \"{{.Topic}}\".\n\n{{.Transcript}}\n\n" +
				"As an impartial judge, weigh the arguments of both sides, decide the winner and explain the reasons for your verdict. " +
				"Finish with a last line of the form VERDICT: FOR, VERDICT: AGAINST or VERDICT: TIE.",
			System: "You are an impartial judge evaluating a debate. Decide the winner and explain your reasoning in English.",
		},
	}
}

// BengaliPrompts is the Bengali prompt set.
func BengaliPrompts() PromptSet {
	return PromptSet{
		TopicHeader:    "বিতর্কের বিষয়: {{.Topic}}",
		ProponentLabel: "পক্ষে",
		OpponentLabel:  "বিপক্ষে",
		SystemLabel:    "সিস্টেম",
		FailurePrefix:  "একটি ত্রুটি ঘটেছে: ",
		Opening: PhaseTemplates{
			Title:  "প্রথম পর্ব",
			Banner: "প্রথম পর্ব শুরু হচ্ছে...",
			Proponent: TurnTemplate{
				Prompt: `তুমি একজন দক্ষ বক্তা। "{{.Topic}}" এই বিষয়ের পক্ষে জোরালো যুক্তি দাও। তোমার উত্তর অবশ্যই বাংলায় হতে হবে।`,
				System: "আপনি একজন বিতার্কিক যিনি বিষয়ের পক্ষে যুক্তি দিচ্ছেন। উত্তরে অবশ্যই বাংলা ব্যবহার করুন।",
			},
			Opponent: TurnTemplate{
				Prompt: `তুমি একজন দক্ষ বক্তা। "{{.Topic}}" এই বিষয়ের বিপক্ষে জোরালো যুক্তি দাও। তোমার উত্তর অবশ্যই বাংলায় হতে হবে।`,
				System: "আপনি একজন বিতার্কিক যিনি বিষয়ের বিপক্ষে যুক্তি দিচ্ছেন। উত্তরে অবশ্যই বাংলা ব্যবহার করুন।",
			},
		},
		Rebuttal: PhaseTemplates{
			Title:  "দ্বিতীয় পর্ব",
			Banner: "দ্বিতীয় পর্ব (পরস্পর খণ্ডন) শুরু হচ্ছে...",
			Proponent: TurnTemplate{
				Prompt: `"{{.Opponent}}" - প্রতিপক্ষের এই যুক্তির জবাবে "{{.Topic}}" বিষয়ের পক্ষে তোমার যুক্তি খণ্ডন কর এবং নিজের অবস্থান আরও দৃঢ় কর। তোমার উত্তর অবশ্যই বাংলায় হতে হবে।`,
				System: "আপনি একজন বিতার্কিক যিনি প্রতিপক্ষের যুক্তি খণ্ডন করছেন এবং নিজের যুক্তিকে আরও শক্তিশালী করছেন। উত্তরে অবশ্যই বাংলা ব্যবহার করুন।",
			},
			Opponent: TurnTemplate{
				Prompt: `"{{.Opponent}}" - প্রতিপক্ষের এই যুক্তির জবাবে "{{.Topic}}" বিষয়ের বিপক্ষে তোমার যুক্তি খণ্ডন কর এবং নিজের অবস্থান আরও দৃঢ় কর। তোমার উত্তর অবশ্যই বাংলায় হতে হবে।`,
				System: "আপনি একজন বিতার্কিক যিনি প্রতিপক্ষের যুক্তি খণ্ডন করছেন এবং নিজের যুক্তিকে আরও শক্তিশালী করছেন। উত্তরে অবশ্যই বাংলা ব্যবহার করুন।",
			},
		},
		Closing: PhaseTemplates{
			Title:  "তৃতীয় পর্ব",
			Banner: "তৃতীয় পর্ব (খণ্ডনের জবাব) শুরু হচ্ছে...",
			Proponent: TurnTemplate{
				Prompt: `"{{.Opponent}}" - প্রতিপক্ষের এই খণ্ডনের জবাবে "{{.Topic}}" বিষয়ের পক্ষে তোমার চূড়ান্ত বক্তব্য দাও। তোমার উত্তর অবশ্যই বাংলায় হতে হবে।`,
				System: "আপনি একজন বিতার্কিক যিনি প্রতিপক্ষের খণ্ডনের চূড়ান্ত জবাব দিচ্ছেন। উত্তরে অবশ্যই বাংলা ব্যবহার করুন।",
			},
			Opponent: TurnTemplate{
				Prompt: `"{{.Opponent}}" - প্রতিপক্ষের এই খণ্ডনের জবাবে "{{.Topic}}" বিষয়ের বিপক্ষে তোমার চূড়ান্ত বক্তব্য দাও। তোমার উত্তর অবশ্যই বাংলায় হতে হবে।`,
				System: "আপনি একজন বিতার্কিক যিনি প্রতিপক্ষের খণ্ডনের চূড়ান্ত জবাব দিচ্ছেন। উত্তরে অবশ্যই বাংলা ব্যবহার করুন।",
			},
		},
		Judgment: JudgmentTemplates{
			Title:  "বিচারকের রায়",
			Banner: "বিচার প্রক্রিয়া শুরু হচ্ছে...",
			Prompt: "নিম্নে একটি বিতর্কের সম্পূর্ণ প্রতিলিপি দেওয়া হলো। বিতর্কের বিষয়: \"{{.Topic}}\"।\n\n{{.Transcript}}\n\n" +
				"একজন নিরপেক্ষ বিচারক হিসেবে, উভয় পক্ষের যুক্তি বিশ্লেষণ করে বিজয়ী নির্ধারণ কর এবং তোমার রায়ের পেছনের কারণ ব্যাখ্যা কর। তোমার উত্তর অবশ্যই বাংলায় হতে হবে।",
			System: "আপনি একজন নিরপেক্ষ বিচারক যিনি একটি বিতর্ক মূল্যায়ন করছেন। বিজয়ী নির্ধারণ করুন এবং আপনার রায়ের কারণ বাংলায় ব্যাখ্যা করুন।",
		},
	}
}

// LookupPrompts returns a built-in prompt set by language code.
func LookupPrompts(lang string) (PromptSet, bool) {
	switch lang {
	case "", "en":
		return EnglishPrompts(), true
	case "bn":
		return BengaliPrompts(), true
	}
	return PromptSet{}, false
}
