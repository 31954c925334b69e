package mocks

import (
	"context"
	"sync"

	"hotelbooking/infras/otel"
)

// Recorder is a tracer that keeps the errors traced on its spans, keyed by span name.
type Recorder struct {
	mu     sync.Mutex
	errors map[string][]error
}

func NewRecorder() *Recorder {
	return &Recorder{errors: map[string][]error{}}
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	return ctx, &recordingScope{recorder: r, span: spanName}
}

func (r *Recorder) Shutdown(context.Context) error {
	return nil
}

func (r *Recorder) Errors(spanName string) []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors[spanName]...)
}

func (r *Recorder) record(spanName string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors[spanName] = append(r.errors[spanName], err)
}

type recordingScope struct {
	discardScope
	recorder *Recorder
	span     string
}

func (s *recordingScope) TraceError(err error) {
	s.recorder.record(s.span, err)
}

func (s *recordingScope) TraceIfError(err error) {
	if err != nil {
		s.recorder.record(s.span, err)
	}
}
