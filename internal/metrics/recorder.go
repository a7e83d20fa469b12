package metrics

import "time"

// ResultLabel enumerates task run outcomes for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFatal   ResultLabel = "fatal"
	ResultFailed  ResultLabel = "failed"
	ResultPanic   ResultLabel = "panic"
)

// OutcomeLabel enumerates compilation outcomes.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeErrors   OutcomeLabel = "errors"
	OutcomeFatal    OutcomeLabel = "fatal"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for the pipeline engine.
type Recorder interface {
	ObserveTaskDuration(task string, d time.Duration)
	IncTaskResult(task string, result ResultLabel)
	ObserveCompileDuration(d time.Duration)
	IncCompileOutcome(outcome OutcomeLabel)
	AddDiagnostics(kind string, n int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveTaskDuration(string, time.Duration) {}
func (NoopRecorder) IncTaskResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveCompileDuration(time.Duration)      {}
func (NoopRecorder) IncCompileOutcome(OutcomeLabel)            {}
func (NoopRecorder) AddDiagnostics(string, int)                {}
