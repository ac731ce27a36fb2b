package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"support-widget/internal/domain"
)

// FileSource reads <dir>/<clientID>/faq.txt and tone.txt.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Fetch(_ context.Context, clientID string) (string, string, error) {
	if !domain.ValidClientID(clientID) {
		return "", "", fmt.Errorf("profile: invalid client id %q", clientID)
	}
	faq, err := readOptional(filepath.Join(s.dir, clientID, "faq.txt"))
	if err != nil {
		return "", "", err
	}
	tone, err := readOptional(filepath.Join(s.dir, clientID, "tone.txt"))
	if err != nil {
		return "", "", err
	}
	return faq, tone, nil
}

func readOptional(path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("profile: read %q: %w", path, err)
	}
	return string(b), nil
}
