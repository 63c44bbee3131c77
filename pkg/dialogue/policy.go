package dialogue

import "strings"

// Policy lists the trigger tokens the agent recognizes. Matching is a
// case-insensitive substring test against the utterance.
type Policy struct {
	Handoff             []string `mapstructure:"handoff" yaml:"handoff"`
	CancelKeywords      []string `mapstructure:"cancel_keywords" yaml:"cancel_keywords"`
	StatusKeywords      []string `mapstructure:"status_keywords" yaml:"status_keywords"`
	BookingKeywords     []string `mapstructure:"booking_keywords" yaml:"booking_keywords"`
	Affirmative         []string `mapstructure:"affirmative" yaml:"affirmative"`
	CancelAffirmative   []string `mapstructure:"cancel_affirmative" yaml:"cancel_affirmative"`
	Cheapest            []string `mapstructure:"cheapest" yaml:"cheapest"`
	Voucher             []string `mapstructure:"voucher" yaml:"voucher"`
	ExtractionStopwords []string `mapstructure:"extraction_stopwords" yaml:"extraction_stopwords"`
}

// DefaultPolicy returns the stock trigger tokens.
//
// Handoff tokens are substrings, so "person" also fires on "2 persons" or
// "personal". Handoff is checked before any slot is filled, which means such
// an answer drops the conversation and transfers it. Prompts ask for bare
// values to keep answers clear of these tokens.
func DefaultPolicy() Policy {
	return Policy{
		Handoff:           []string{"human", "agent", "person"},
		CancelKeywords:    []string{"cancel", "cancellation"},
		StatusKeywords:    []string{"status", "check"},
		BookingKeywords:   []string{"book", "ticket", "flight", "fly"},
		Affirmative:       []string{"yes", "confirm"},
		CancelAffirmative: []string{"yes", "proceed", "confirm"},
		Cheapest:          []string{"cheapest"},
		Voucher:           []string{"voucher"},
		ExtractionStopwords: []string{
			"a", "an", "the", "my", "me", "book", "fly", "flight", "travel", "go", "get", "buy",
		},
	}
}

// WithDefaults fills every empty token list from DefaultPolicy.
func (p Policy) WithDefaults() Policy {
	d := DefaultPolicy()
	fill := func(dst *[]string, def []string) {
		if len(*dst) == 0 {
			*dst = def
		}
	}
	fill(&p.Handoff, d.Handoff)
	fill(&p.CancelKeywords, d.CancelKeywords)
	fill(&p.StatusKeywords, d.StatusKeywords)
	fill(&p.BookingKeywords, d.BookingKeywords)
	fill(&p.Affirmative, d.Affirmative)
	fill(&p.CancelAffirmative, d.CancelAffirmative)
	fill(&p.Cheapest, d.Cheapest)
	fill(&p.Voucher, d.Voucher)
	fill(&p.ExtractionStopwords, d.ExtractionStopwords)
	return p
}

// IsHandoff reports whether text asks for a human.
func (p Policy) IsHandoff(text string) bool {
	return containsAny(text, p.Handoff)
}

func containsAny(text string, tokens []string) bool {
	text = strings.ToLower(text)
	for _, token := range tokens {
		if token != "" && strings.Contains(text, strings.ToLower(token)) {
			return true
		}
	}
	return false
}

func isStopword(word string, stopwords []string) bool {
	for _, s := range stopwords {
		if strings.EqualFold(word, s) {
			return true
		}
	}
	return false
}
