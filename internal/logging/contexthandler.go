package logging

import (
	"context"
	"log/slog"
)

// ContextProvider returns attributes evaluated at the moment a record is
// handled, such as the current simulation step.
type ContextProvider func() []slog.Attr

// ContextHandler appends the provider's attributes to every record before
// passing it on.
type ContextHandler struct {
	inner    slog.Handler
	provider ContextProvider
}

func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{inner: inner, provider: provider}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider != nil {
		r.AddAttrs(h.provider()...)
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.wrap(h.inner.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.wrap(h.inner.WithGroup(name))
}

func (h *ContextHandler) wrap(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner, provider: h.provider}
}

// SimulationState is the part of the scheduler the log context reads.
type SimulationState interface {
	Running() bool
	Steps() uint64
}

// ObjectCounter reports how many objects are registered.
type ObjectCounter interface {
	Count() int
}

// SimulationAttrs returns a provider adding running, objects and step to
// every record. Either source may be nil until the simulation exists.
func SimulationAttrs(sim SimulationState, objects ObjectCounter) ContextProvider {
	return func() []slog.Attr {
		var attrs []slog.Attr
		if sim != nil {
			attrs = append(attrs, slog.Bool("running", sim.Running()), slog.Uint64("step", sim.Steps()))
		}
		if objects != nil {
			attrs = append(attrs, slog.Int("objects", objects.Count()))
		}
		return attrs
	}
}
