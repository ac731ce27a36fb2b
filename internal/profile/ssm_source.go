package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ParamBatchGetter fetches several parameters, omitting missing ones.
type ParamBatchGetter interface {
	GetParameters(ctx context.Context, names ...string) (map[string]string, error)
}

// SSMSource reads <prefix>/<clientID>/faq and <prefix>/<clientID>/tone.
type SSMSource struct {
	params ParamBatchGetter
	prefix string
}

func NewSSMSource(params ParamBatchGetter, prefix string) (*SSMSource, error) {
	if params == nil {
		return nil, errors.New("profile: param getter must not be nil")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return nil, errors.New("profile: parameter prefix must not be empty")
	}
	return &SSMSource{params: params, prefix: prefix}, nil
}

func (s *SSMSource) Fetch(ctx context.Context, clientID string) (string, string, error) {
	faqName := s.prefix + "/" + clientID + "/faq"
	toneName := s.prefix + "/" + clientID + "/tone"

	values, err := s.params.GetParameters(ctx, faqName, toneName)
	if err != nil {
		return "", "", fmt.Errorf("profile: Fetch %q: %w", clientID, err)
	}
	return values[faqName], values[toneName], nil
}
