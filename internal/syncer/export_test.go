package syncer

// SetFailureReporter replaces the handler for failed asynchronous writes.
func (c *Coordinator) SetFailureReporter(fn func(operation string, err error)) {
	c.reportFailure = fn
}
