package llm

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Provider  string
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] llm_call task=%s provider=%s model=%s latency_ms=%d attempts=%d status=%s\n",
		ts, event.Task, event.Provider, event.Model, event.LatencyMs, event.Attempts, status)
}

// ZapObserver records LLM call events as structured log entries.
type ZapObserver struct {
	log *zap.Logger
}

// NewZapObserver creates an Observer backed by log.
func NewZapObserver(log *zap.Logger) *ZapObserver {
	return &ZapObserver{log: log.Named("llm")}
}

func (o *ZapObserver) OnCallComplete(event LLMCallEvent) {
	fields := []zap.Field{
		zap.String("task", string(event.Task)),
		zap.String("provider", event.Provider),
		zap.String("model", event.Model),
		zap.Int64("latency_ms", event.LatencyMs),
		zap.Int("attempts", event.Attempts),
	}
	if !event.Success {
		o.log.Warn("llm_call failed", append(fields, zap.String("error_code", event.ErrorCode))...)
		return
	}
	o.log.Info("llm_call", fields...)
}

// MultiObserver fans events out to several observers.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event LLMCallEvent) {
	for _, o := range m {
		o.OnCallComplete(event)
	}
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
