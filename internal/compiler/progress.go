package compiler

import "time"

// Stage names a compiler stage in progress events.
type Stage string

const (
	StageOpen      Stage = "open"
	StageAnalyze   Stage = "analyze"
	StageSymbols   Stage = "symbols"
	StageValidate  Stage = "validate"
	StageTranslate Stage = "translate"
	StageEmit      Stage = "emit"
	StageWrite     Stage = "write"
)

// Stages lists the stages of a full compilation in order.
var Stages = []Stage{StageOpen, StageAnalyze, StageSymbols, StageValidate, StageTranslate, StageEmit, StageWrite}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the document is waiting for its first stage.
	StatusQueued Status = "queued"
	// StatusWorking indicates the document is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the stage finished for the document.
	StatusDone Status = "done"
	// StatusSkipped indicates the document dropped out of the compilation.
	StatusSkipped Status = "skipped"
	// StatusError indicates the stage reported errors for the document.
	StatusError Status = "error"
)

// Event reports progress for a document (or for the whole stage when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. OnEvent is called from worker
// goroutines and must be safe for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent sends evt, blocking until the receiver takes it.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

// OnEvent calls f.
func (f SinkFunc) OnEvent(evt Event) { f(evt) }

type progress struct {
	sink ProgressSink
}

func (p progress) stage(stage Stage, status Status, elapsed time.Duration) {
	if p.sink == nil {
		return
	}
	p.sink.OnEvent(Event{Stage: stage, Status: status, Elapsed: elapsed})
}

func (p progress) file(file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if p.sink == nil {
		return
	}
	p.sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// track reports stage as working and returns a func that reports it done.
func (p progress) track(stage Stage) func() {
	start := time.Now()
	p.stage(stage, StatusWorking, 0)
	return func() { p.stage(stage, StatusDone, time.Since(start)) }
}
