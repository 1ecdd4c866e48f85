package deps

// Stage names a point in a computation reported to a tracer.
type Stage string

const (
	StageCoverInput      Stage = "cover.input"
	StageCoverReducedLHS Stage = "cover.reduced_lhs"
	StageCoverRedundant  Stage = "cover.redundant"
	StageCoverResult     Stage = "cover.result"
	StageSplit           Stage = "decompose.split"
	StageSynthesis       Stage = "decompose.synthesis"
)

// TraceEvent describes one step of a minimal cover or a decomposition.
type TraceEvent struct {
	Stage  Stage
	Schema Attrs
	// FDs holds the FDs relevant to the stage: the input, the dropped or
	// rewritten FDs, or the result.
	FDs []FD
	// Dep is the violating dependency for a split.
	Dep   Dependency
	Parts []Attrs
}

type options struct {
	tracer   func(TraceEvent)
	parallel bool
}

type Option func(*options)

// WithTracer installs a callback that receives TraceEvents. Without one the
// schema computations have no side effects.
func WithTracer(f func(TraceEvent)) Option {
	return func(o *options) {
		o.tracer = f
	}
}

// WithParallel decomposes the two halves of every split concurrently. The
// resulting order is the same as the sequential one.
func WithParallel(parallel bool) Option {
	return func(o *options) {
		o.parallel = parallel
	}
}

func (s *Schema) trace(e TraceEvent) {
	if s.opts.tracer == nil {
		return
	}
	if e.Schema == nil {
		e.Schema = s.Attributes()
	}
	s.opts.tracer(e)
}
