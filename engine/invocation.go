package engine

import (
	"context"

	"github.com/dbparquet/pgparquet/rowtype"
)

// WriterContext snapshots one in-flight CopyTo invocation: the target URI
// and row descriptor, so a CopyTo nested inside another (one triggered
// from within a RowSource's own tuple production) can see what its
// caller was writing, and so an error can report which invocation in the
// nest actually failed.
type WriterContext struct {
	URI  string
	Desc *rowtype.TupleDescriptor
}

// WriterStack is the explicit, per-Invocation replacement for the
// original extension's process-global mutable writer-context stack:
// ownership lives on *Invocation rather than a package variable, so two
// unrelated invocations never see each other's frames.
type WriterStack struct {
	frames []*WriterContext
}

func (s *WriterStack) push(wc *WriterContext) { s.frames = append(s.frames, wc) }

func (s *WriterStack) pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Top returns the innermost in-flight writer context, or nil if CopyTo
// is not currently running on this invocation.
func (s *WriterStack) Top() *WriterContext {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// Depth reports how many CopyTo calls are currently nested on this
// invocation.
func (s *WriterStack) Depth() int { return len(s.frames) }

// Invocation carries the state one top-level CopyTo/CopyFrom call — and
// any CopyTo calls nested underneath it — shares. It is threaded through
// context.Context rather than held in a package-level variable.
type Invocation struct {
	Writers WriterStack
}

type invocationKey struct{}

// invocationFromContext returns the *Invocation already attached to ctx,
// or a fresh one if ctx carries none yet (the outermost call).
func invocationFromContext(ctx context.Context) *Invocation {
	if inv, ok := ctx.Value(invocationKey{}).(*Invocation); ok {
		return inv
	}
	return &Invocation{}
}

func withInvocation(ctx context.Context, inv *Invocation) context.Context {
	return context.WithValue(ctx, invocationKey{}, inv)
}
