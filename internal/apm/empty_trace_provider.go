package apm

// emptyTraceProvider satisfies TraceProvider when tracing is disabled.
// No exporter is installed; spans go to the default noop provider.
type emptyTraceProvider struct{}

func NewEmptyTraceProvider() TraceProvider {
	return emptyTraceProvider{}
}

func (emptyTraceProvider) Stop() error {
	return nil
}
