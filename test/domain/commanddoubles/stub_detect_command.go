//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/autochangeset/internal/domain/commands"
)

// StubDetectCommand is a stub implementation of commands.Detect.
type StubDetectCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *commands.DetectionResult
	LastOpts         commands.DetectOptions
}

var _ commands.Detect = (*StubDetectCommand)(nil)

func (s *StubDetectCommand) Execute(
	_ context.Context,
	opts commands.DetectOptions,
) (*commands.DetectionResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &commands.DetectionResult{}, nil
}
