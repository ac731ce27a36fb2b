package lexicon

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Matcher answers the classification questions for one Lexicon. It is
// immutable and safe for concurrent use.
type Matcher struct {
	lex          Lexicon
	acks         map[string]struct{}
	handoffExact map[string]struct{}
}

// NewMatcher normalizes a copy of lex, validates it and builds a Matcher.
func NewMatcher(lex Lexicon) (*Matcher, error) {
	lex = normalizeLexicon(lex)
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(lex); err != nil {
		return nil, errors.Join(errors.New("lexicon: invalid lexicon"), err)
	}
	return &Matcher{
		lex:          lex,
		acks:         toSet(lex.Acknowledgements),
		handoffExact: toSet(lex.HandoffExact),
	}, nil
}

// MustDefault returns a Matcher over the built-in lexicon.
func MustDefault() *Matcher {
	m, err := NewMatcher(Default())
	if err != nil {
		panic(err)
	}
	return m
}

// Version reports the lexicon version the matcher was built from.
func (m *Matcher) Version() string {
	return m.lex.Version
}

// IsBriefAcknowledgement reports whether the whole message is a short closing
// remark such as "thanks" or "got it". Mixed-intent messages return false.
func (m *Matcher) IsBriefAcknowledgement(text string) bool {
	txt := normalize(text)
	if txt == "" || len(txt) > m.lex.MaxAcknowledgementLength {
		return false
	}
	_, ok := m.acks[txt]
	return ok
}

// WantsHandoff reports whether the customer asks to leave contact details or
// reach a human. Exact triggers and explicit phrases always win; the looser
// info-word plus giving-verb rule is skipped for questions and inquiries.
func (m *Matcher) WantsHandoff(text string) bool {
	txt := normalize(text)
	if txt == "" {
		return false
	}
	if _, ok := m.handoffExact[txt]; ok {
		return true
	}
	if containsAny(txt, m.lex.HandoffPhrases) {
		return true
	}

	if strings.HasSuffix(txt, "?") {
		return false
	}
	if containsAny(txt, m.lex.InquiryWords) {
		return false
	}
	return containsAny(txt, m.lex.InfoWords) && containsAny(txt, m.lex.GivingVerbs)
}

// LooksAffirmative reports whether the message is, or starts with, a yes.
func (m *Matcher) LooksAffirmative(text string) bool {
	return leadsWith(normalize(text), m.lex.Affirmatives)
}

// LooksNegative reports whether the message is, or starts with, a no.
func (m *Matcher) LooksNegative(text string) bool {
	return leadsWith(normalize(text), m.lex.Negatives)
}

// MentionsUrgency reports whether the message mentions pain or asks about an
// appointment.
func (m *Matcher) MentionsUrgency(text string) bool {
	txt := normalize(text)
	if txt == "" {
		return false
	}
	return containsAny(txt, m.lex.PainKeywords) || containsAny(txt, m.lex.AppointmentKeywords)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func leadsWith(txt string, phrases []string) bool {
	if txt == "" {
		return false
	}
	for _, p := range phrases {
		if txt == p || strings.HasPrefix(txt, p+" ") {
			return true
		}
	}
	return false
}

func containsAny(txt string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(txt, p) {
			return true
		}
	}
	return false
}

func toSet(phrases []string) map[string]struct{} {
	set := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		set[p] = struct{}{}
	}
	return set
}

func normalizeLexicon(lex Lexicon) Lexicon {
	lex.Acknowledgements = normalizeAll(lex.Acknowledgements)
	lex.HandoffExact = normalizeAll(lex.HandoffExact)
	lex.HandoffPhrases = normalizeAll(lex.HandoffPhrases)
	lex.InquiryWords = normalizeAll(lex.InquiryWords)
	lex.InfoWords = normalizeAll(lex.InfoWords)
	lex.GivingVerbs = normalizeAll(lex.GivingVerbs)
	lex.Affirmatives = normalizeAll(lex.Affirmatives)
	lex.Negatives = normalizeAll(lex.Negatives)
	lex.PainKeywords = normalizeAll(lex.PainKeywords)
	lex.AppointmentKeywords = normalizeAll(lex.AppointmentKeywords)
	return lex
}

// normalizeAll keeps blank entries as "" so validation rejects them.
func normalizeAll(phrases []string) []string {
	if phrases == nil {
		return nil
	}
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = normalize(p)
	}
	return out
}
