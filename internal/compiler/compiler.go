package compiler

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"time"

	"github.com/vk/compilekit/internal/ctxlog"
	"github.com/vk/compilekit/internal/diag"
	"github.com/vk/compilekit/internal/feeder"
	"github.com/vk/compilekit/internal/logfields"
	"github.com/vk/compilekit/internal/metrics"
	"github.com/vk/compilekit/internal/session"
	"github.com/vk/compilekit/internal/task"
)

// Options carries per-compilation settings.
type Options struct {
	// Data is copied into the session's global data, in key order, before
	// the first task runs.
	Data map[string]any
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Compiler) {
		if r != nil {
			c.recorder = r
		}
	}
}

// Compiler is an ordered pipeline of task entries.
type Compiler struct {
	name     string
	entries  []*task.Entry
	recorder metrics.Recorder
}

// New creates a compiler. Nil entries are allowed and skipped at run time.
func New(name string, entries []*task.Entry, opts ...Option) *Compiler {
	c := &Compiler{
		name:     name,
		entries:  append([]*task.Entry(nil), entries...),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the compiler name.
func (c *Compiler) Name() string { return c.name }

// TaskCount returns the number of entry slots, nil ones included.
func (c *Compiler) TaskCount() int { return len(c.entries) }

// Entry returns the entry at index i.
func (c *Compiler) Entry(i int) (*task.Entry, bool) {
	if i < 0 || i >= len(c.entries) || c.entries[i] == nil {
		return nil, false
	}
	return c.entries[i], true
}

// Compile runs the pipeline over a new session built from feeders.
func (c *Compiler) Compile(ctx context.Context, feeders []feeder.Feeder, opts Options) *session.Session {
	return c.Run(ctx, session.New(feeders...), opts)
}

// Run runs the pipeline over an existing session, for example one linked to
// or derived from an earlier run. s is returned for convenience.
func (c *Compiler) Run(ctx context.Context, s *session.Session, opts Options) *session.Session {
	start := time.Now()
	ctx = ctxlog.With(ctx, logfields.RunID(s.ID().String()), logfields.Compiler(c.name))
	logger := ctxlog.FromContext(ctx)
	logger.Info("Compilation started.", "feeders", s.FeederCount(), "tasks", len(c.entries))

	names := make([]string, 0, len(opts.Data))
	for name := range opts.Data {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.SetArbitrary(name, opts.Data[name])
	}

	if !s.HasFatalError() {
		for i, e := range c.entries {
			if e == nil {
				continue
			}
			if err := ctx.Err(); err != nil {
				s.Fatal("compilation cancelled", err)
				s.Stop(i)
				break
			}
			if !c.dispatch(ctx, s, i, e) {
				logger.Debug("Pipeline stopped.", logfields.TaskIndex(i), logfields.Task(e.Task().Name()))
				s.Stop(i)
				break
			}
		}
	}
	s.Rewind()

	c.finish(ctx, s, time.Since(start))
	return s
}

// dispatch runs entry i as often as its scope asks for. It returns false when
// the pipeline must stop.
func (c *Compiler) dispatch(ctx context.Context, s *session.Session, i int, e *task.Entry) bool {
	// Tasks can move the session cursor, so the loop keeps its own position
	// and re-seeks before every run.
	defer s.Rewind()
	switch e.Task().Scope() {
	case task.PerFeeder:
		for fi := 0; fi < s.FeederCount(); fi++ {
			s.SeekFeeder(fi)
			if !c.runOnce(ctx, s, i, e) {
				return false
			}
		}
		return true
	case task.PerCode:
		for fi := 0; fi < s.FeederCount(); fi++ {
			for ci := 0; ci < s.CodeCount(fi); ci++ {
				s.SeekCode(fi, ci)
				if !c.runOnce(ctx, s, i, e) {
					return false
				}
			}
		}
		return true
	default:
		s.Rewind()
		return c.runOnce(ctx, s, i, e)
	}
}

func (c *Compiler) runOnce(ctx context.Context, s *session.Session, i int, e *task.Entry) bool {
	name := e.Task().Name()
	start := time.Now()
	result := c.invoke(ctx, s, i, e)
	c.recorder.ObserveTaskDuration(name, time.Since(start))

	if result == metrics.ResultSuccess && s.HasFatalError() {
		result = metrics.ResultFatal
	}
	c.recorder.IncTaskResult(name, result)
	return result == metrics.ResultSuccess
}

// invoke performs one run of entry i against the current cursor.
func (c *Compiler) invoke(ctx context.Context, s *session.Session, i int, e *task.Entry) (result metrics.ResultLabel) {
	t := e.Task()
	logger := ctxlog.FromContext(ctx).With(logfields.TaskIndex(i), logfields.Task(t.Name()), logfields.Scope(t.Scope().String()))
	if f, ok := s.CurrentFeeder(); ok {
		logger = logger.With(logfields.Feeder(f.Index))
	}
	if cr, ok := s.CurrentCode(); ok {
		logger = logger.With(logfields.Code(cr.Name))
	}

	defer func() {
		if r := recover(); r != nil {
			err := &PanicError{Value: r, Stack: debug.Stack()}
			logger.Error("Task panicked.", logfields.Error(err))
			s.Error(exceptionText(i), err)
			result = metrics.ResultPanic
		}
	}()

	ins, err := resolveInputs(s, t, e.Inputs())
	if err != nil {
		s.Error(fmt.Sprintf("Task #%d (%s): %v.", i, t.Name(), err), err)
		return metrics.ResultFailed
	}

	logger.Debug("Running task.")
	inv := task.Invocation{Ctx: ctxlog.WithLogger(ctx, logger), Index: i, Entry: e, Session: s}
	outs, err := t.Run(inv, ins)
	if err != nil {
		logger.Debug("Task failed.", logfields.Error(err))
		s.Error(exceptionText(i), err)
		return metrics.ResultFailed
	}
	if outs == nil {
		return metrics.ResultSuccess
	}

	if err := storeOutputs(s, t, e.Outputs(), outs); err != nil {
		s.Error(fmt.Sprintf("Task #%d (%s): %v.", i, t.Name(), err), err)
		return metrics.ResultFailed
	}
	return metrics.ResultSuccess
}

func exceptionText(i int) string {
	return fmt.Sprintf("There is an exception thrown while executing Task #%d.", i)
}

func (c *Compiler) finish(ctx context.Context, s *session.Session, elapsed time.Duration) {
	counts := make(map[diag.Kind]int)
	for _, m := range s.Messages() {
		counts[m.Kind]++
	}
	for kind, n := range counts {
		text, _ := kind.MarshalText()
		c.recorder.AddDiagnostics(string(text), n)
	}

	outcome := metrics.OutcomeSuccess
	switch {
	case ctx.Err() != nil && s.HasFatalError():
		outcome = metrics.OutcomeCanceled
	case s.HasFatalError():
		outcome = metrics.OutcomeFatal
	case s.HasError():
		outcome = metrics.OutcomeErrors
	}
	c.recorder.IncCompileOutcome(outcome)
	c.recorder.ObserveCompileDuration(elapsed)

	ctxlog.FromContext(ctx).Info("Compilation finished.",
		"outcome", string(outcome),
		"messages", s.Len(),
		"errors", s.ErrorCount(),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000),
	)
}

// PanicError wraps a value recovered from a panicking task.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
