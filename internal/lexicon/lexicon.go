// Package lexicon classifies single customer messages against ordered phrase
// lists: acknowledgements, handoff requests, yes/no answers and urgency cues.
package lexicon

const defaultMaxAcknowledgementLength = 30

// Lexicon is the versioned phrase data behind every predicate. All phrases are
// matched against lowercased, trimmed text.
type Lexicon struct {
	Version string `yaml:"version"`

	Acknowledgements         []string `yaml:"acknowledgements" validate:"required,min=1,dive,required"`
	MaxAcknowledgementLength int      `yaml:"max_acknowledgement_length" validate:"gte=1"`

	HandoffExact   []string `yaml:"handoff_exact" validate:"dive,required"`
	HandoffPhrases []string `yaml:"handoff_phrases" validate:"required,min=1,dive,required"`
	InquiryWords   []string `yaml:"inquiry_words" validate:"dive,required"`
	InfoWords      []string `yaml:"info_words" validate:"dive,required"`
	GivingVerbs    []string `yaml:"giving_verbs" validate:"dive,required"`

	Affirmatives []string `yaml:"affirmatives" validate:"required,min=1,dive,required"`
	Negatives    []string `yaml:"negatives" validate:"required,min=1,dive,required"`

	PainKeywords        []string `yaml:"pain_keywords" validate:"dive,required"`
	AppointmentKeywords []string `yaml:"appointment_keywords" validate:"dive,required"`
}

// Default returns the built-in phrase lists.
func Default() Lexicon {
	return Lexicon{
		Version: "builtin-1",
		Acknowledgements: []string{
			"thanks",
			"thank you",
			"thx",
			"ok",
			"okay",
			"got it",
			"that helps",
			"perfect",
			"sounds good",
			"awesome",
			"great",
			"cool",
			"sweet",
			"appreciate it",
		},
		MaxAcknowledgementLength: defaultMaxAcknowledgementLength,
		HandoffExact:             []string{"info", "my info"},
		HandoffPhrases: []string{
			"can i leave my info",
			"can i give you my info",
			"can i give u my info",
			"take my info",
			"take my information",
			"i want to give you my info",
			"i want to leave my info",
			"i want to give u my info",
			"i want to give u info",
			"leave my info",
			"leave my information",
			"give you my info",
			"give u my info",
			"share my info",
			"pass my info",
			"give my info",
			"give my information",
			"here is my info",
			"here's my info",
			"talk to a human",
			"speak to a human",
			"have someone call me",
			"have somebody call me",
			"have the office call me",
			"call me back",
			"can someone call me",
			"can somebody call me",
		},
		InquiryWords: []string{
			"offer",
			"offers",
			"do you have",
			"do you do",
			"price",
			"prices",
			"cost",
			"hours",
			"open",
			"close",
			"location",
			"where are you",
			"emergency",
			"tooth",
			"pain",
			"insurance",
			"whitening",
			"cleaning",
			"cleanings",
		},
		InfoWords:   []string{"info", "information", "details", "contact"},
		GivingVerbs: []string{"leave", "give", "share", "pass", "provide", "send", "take"},
		Affirmatives: []string{
			"yes",
			"yeah",
			"yep",
			"sure",
			"yes please",
			"please do",
			"that would be great",
			"ok",
			"okay",
			"sounds good",
		},
		Negatives: []string{
			"no",
			"nope",
			"nah",
			"not now",
			"not yet",
			"i'm good",
			"im good",
			"i am good",
			"i'm okay",
			"im okay",
		},
		PainKeywords: []string{
			"pain",
			"hurts",
			"hurt",
			"ache",
			"aching",
			"injury",
			"injured",
			"emergency",
			"swollen",
			"swelling",
			"can't sleep",
			"cant sleep",
			"stiff",
			"spasm",
			"spasms",
			"numb",
			"numbness",
			"tingling",
			"tingly",
		},
		AppointmentKeywords: []string{
			"appointment",
			"appt",
			"appts",
			"visit",
			"come in",
			"come by",
			"see someone",
			"see the doctor",
			"see the dentist",
			"see the chiropractor",
			"see the chiro",
			"schedule",
			"book",
		},
	}
}
