package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"support-widget/internal/domain"
)

const transcriptRule = "----------------------------------------"

// TranscriptLog appends answered turns to <dir>/<clientID>/conversations.log
// for the business to review.
type TranscriptLog struct {
	dir string
	mu  sync.Mutex
}

func NewTranscriptLog(dir string) *TranscriptLog {
	return &TranscriptLog{dir: dir}
}

func (l *TranscriptLog) Record(_ context.Context, turn domain.Turn) error {
	if !domain.ValidClientID(turn.ClientID) {
		return fmt.Errorf("repository: Record: invalid client id %q", turn.ClientID)
	}
	clientDir := filepath.Join(l.dir, turn.ClientID)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", turn.At.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, "Q: %s\n", turn.Question)
	fmt.Fprintf(&b, "A: %s\n", turn.Answer)
	b.WriteString(transcriptRule + "\n")

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(clientDir, 0o755); err != nil {
		return fmt.Errorf("repository: Record: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(clientDir, "conversations.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("repository: Record: %w", err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("repository: Record: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("repository: Record: %w", err)
	}
	return nil
}
