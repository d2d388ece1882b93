package services

// Invalidator marks a logically rendered page stale after a mutation.
// Implementations are fire-and-forget; failures must not fail the mutation.
type Invalidator interface {
	InvalidatePath(path string)
}

// NopInvalidator discards invalidations. Used when no cache is configured
// and by tests.
type NopInvalidator struct{}

func (NopInvalidator) InvalidatePath(string) {}
