package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"support-widget/internal/domain"
)

var leadCSVHeader = []string{"timestamp", "name", "email", "message"}

// LeadCSV appends leads to a CSV file. The header is written when the file
// is first created.
type LeadCSV struct {
	path string
	mu   sync.Mutex
}

func NewLeadCSV(path string) *LeadCSV {
	return &LeadCSV{path: path}
}

func (s *LeadCSV) Append(_ context.Context, lead domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("repository: Append: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("repository: Append: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("repository: Append: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(leadCSVHeader); err != nil {
			return fmt.Errorf("repository: Append header: %w", err)
		}
	}
	record := []string{
		lead.CreatedAt.Format("2006-01-02T15:04:05"),
		lead.Name,
		lead.Email,
		lead.Message,
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("repository: Append: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("repository: Append flush: %w", err)
	}
	return nil
}
