package types

// ScopeContext returns a shallow copy of rc for handing to the deployment plugin
// named pluginName. When the context logger supports scoping, the copy gets a
// logger whose scope is the existing scope names followed by pluginName, so the
// plugin's lines read "[orchestrator] [plugin] › ...". rc and its logger are
// never modified.
func ScopeContext(rc *ReleaseContext, pluginName string) *ReleaseContext {
	scoped := *rc

	if logger, ok := rc.Logger.(ScopedLogger); ok {
		existing := logger.ScopeNames()
		names := make([]string, 0, len(existing)+1)
		names = append(names, existing...)
		names = append(names, pluginName)
		scoped.Logger = logger.Scope(names...)
	}

	return &scoped
}
