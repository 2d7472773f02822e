package testutil

import (
	"context"

	"github.com/arthur-debert/precheck/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockPlugin is a deployment plugin whose hooks are recorded by testify.
// Expectations are set on the "Hook" method with the hook, options and context:
//
//	p.On("Hook", types.HookPublish, mock.Anything, mock.Anything).Return(nil)
type MockPlugin struct {
	mock.Mock
	implemented map[types.Hook]bool
}

// NewMockPlugin creates a plugin implementing the given hooks, or all nine
// when none are given.
func NewMockPlugin(hooks ...types.Hook) *MockPlugin {
	if len(hooks) == 0 {
		hooks = types.AllHooks()
	}
	implemented := make(map[types.Hook]bool, len(hooks))
	for _, h := range hooks {
		implemented[h] = true
	}
	return &MockPlugin{implemented: implemented}
}

// Lookup implements types.Plugin.
func (m *MockPlugin) Lookup(hook types.Hook) (types.HookFunc, bool) {
	if !m.implemented[hook] {
		return nil, false
	}
	return func(ctx context.Context, options map[string]interface{}, rc *types.ReleaseContext) error {
		args := m.MethodCalled("Hook", hook, options, rc)
		return args.Error(0)
	}, true
}

// AllowAll sets a nil-returning expectation on every implemented hook.
func (m *MockPlugin) AllowAll() *MockPlugin {
	for _, h := range types.AllHooks() {
		if m.implemented[h] {
			m.On("Hook", h, mock.Anything, mock.Anything).Return(nil).Maybe()
		}
	}
	return m
}

// MockTagDeleter records tag deletions.
type MockTagDeleter struct {
	mock.Mock
}

// DeleteTag records the call and returns the configured error.
func (m *MockTagDeleter) DeleteTag(ctx context.Context, tag string, rc *types.ReleaseContext) error {
	args := m.Called(tag)
	return args.Error(0)
}
