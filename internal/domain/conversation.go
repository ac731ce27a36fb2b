package domain

import (
	"regexp"
	"time"
)

// ClientProfile holds the per-client text that constrains generated answers.
type ClientProfile struct {
	ClientID string
	FAQ      string
	Tone     string
}

// Turn is one answered customer message, kept for later review.
type Turn struct {
	ClientID  string
	SessionID string
	Question  string
	Answer    string
	Kind      ReplyKind
	At        time.Time
}

// Message is a single persisted transcript item.
type Message struct {
	PK             string
	SK             string
	ConversationID string
	Text           string
	Answer         string
	Kind           string
	TTL            int64
}

// ConversationKey scopes a widget session to the client it belongs to.
func ConversationKey(clientID, sessionID string) string {
	return clientID + ":" + sessionID
}

// MissingFAQText stands in for a client that has not supplied any FAQ text.
const MissingFAQText = "No FAQ data found. The business owner has not provided any information yet."

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// ValidClientID reports whether id is safe to use as a storage path segment.
func ValidClientID(id string) bool {
	return clientIDPattern.MatchString(id)
}
