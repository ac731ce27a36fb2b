package domain

// LeadFlowSentinel is the exact token a widget matches to switch into lead
// collection. It must never carry surrounding text.
const LeadFlowSentinel = "__TRIGGER_LEAD_FLOW__"

// ReplyKind tags how a reply was produced.
type ReplyKind int

const (
	// ReplyLiteral is a fixed or templated string.
	ReplyLiteral ReplyKind = iota
	// ReplyLeadFlow asks the caller to start lead collection.
	ReplyLeadFlow
	// ReplyGenerated came from the text-generation capability.
	ReplyGenerated
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyLiteral:
		return "literal"
	case ReplyLeadFlow:
		return "lead_flow"
	case ReplyGenerated:
		return "generated"
	default:
		return "unknown"
	}
}

// Reply is the outcome of answering one customer message.
type Reply struct {
	Kind ReplyKind
	Text string
}

// LiteralReply wraps a fixed user-facing string.
func LiteralReply(text string) Reply {
	return Reply{Kind: ReplyLiteral, Text: text}
}

// LeadFlowReply signals the caller to begin lead collection.
func LeadFlowReply() Reply {
	return Reply{Kind: ReplyLeadFlow}
}

// GeneratedReply wraps generator output, possibly with an appended follow-up.
func GeneratedReply(text string) Reply {
	return Reply{Kind: ReplyGenerated, Text: text}
}

// IsLeadFlow reports whether the reply triggers lead collection.
func (r Reply) IsLeadFlow() bool {
	return r.Kind == ReplyLeadFlow
}

// Wire renders the reply for existing widget callers: the lead flow becomes
// the sentinel, everything else is shown verbatim.
func (r Reply) Wire() string {
	if r.Kind == ReplyLeadFlow {
		return LeadFlowSentinel
	}
	return r.Text
}
