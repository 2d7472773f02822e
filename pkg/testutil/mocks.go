package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/arthur-debert/precheck/pkg/lookup"
	"github.com/arthur-debert/precheck/pkg/shell"
	"github.com/arthur-debert/precheck/pkg/types"
)

// MockLookup is a registry lookup recorded by testify.
type MockLookup struct {
	mock.Mock
}

// IsDeployed records the query and returns the configured result. The first
// return value may be a func(lookup.Query) bool.
func (m *MockLookup) IsDeployed(ctx context.Context, q lookup.Query) (bool, error) {
	args := m.Called(q)
	if fn, ok := args.Get(0).(func(lookup.Query) bool); ok {
		return fn(q), args.Error(1)
	}
	return args.Bool(0), args.Error(1)
}

// MockRunner is a command runner recorded by testify. Expectations match on
// the rendered command line.
type MockRunner struct {
	mock.Mock
}

// Run records the command line and returns the configured error.
func (m *MockRunner) Run(ctx context.Context, cmd shell.Command, logger types.Logger) error {
	args := m.Called(cmd.Line)
	return args.Error(0)
}

// DeployedVersions returns a MockLookup reporting the given versions of every
// package as deployed and anything else as not deployed.
func DeployedVersions(versions ...string) *MockLookup {
	deployed := make(map[string]bool, len(versions))
	for _, v := range versions {
		deployed[v] = true
	}
	m := &MockLookup{}
	m.On("IsDeployed", mock.Anything).Return(func(q lookup.Query) bool {
		return deployed[q.PackageVersion]
	}, nil)
	return m
}
