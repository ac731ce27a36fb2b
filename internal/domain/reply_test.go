package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReply_Wire(t *testing.T) {
	require.Equal(t, LeadFlowSentinel, LeadFlowReply().Wire())
	require.Equal(t, "hello", LiteralReply("hello").Wire())
	require.Equal(t, "generated", GeneratedReply("generated").Wire())
}

func TestReply_LeadFlowIgnoresText(t *testing.T) {
	r := Reply{Kind: ReplyLeadFlow, Text: "should not leak"}
	require.True(t, r.IsLeadFlow())
	require.Equal(t, "__TRIGGER_LEAD_FLOW__", r.Wire())
}

func TestReplyKind_String(t *testing.T) {
	require.Equal(t, "literal", ReplyLiteral.String())
	require.Equal(t, "lead_flow", ReplyLeadFlow.String())
	require.Equal(t, "generated", ReplyGenerated.String())
	require.Equal(t, "unknown", ReplyKind(42).String())
}

func TestValidClientID(t *testing.T) {
	require.True(t, ValidClientID("summit_family_dental"))
	require.True(t, ValidClientID("acme-2"))
	require.False(t, ValidClientID(""))
	require.False(t, ValidClientID("../etc"))
	require.False(t, ValidClientID("a/b"))
	require.False(t, ValidClientID("_hidden"))
}

func TestConversationKey(t *testing.T) {
	require.Equal(t, "acme:s1", ConversationKey("acme", "s1"))
}
