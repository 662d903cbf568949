package simulator

import (
	"github.com/gmonteiro13/simulador-investimentos/date"
	"github.com/rs/zerolog"
)

// EventKind identifies what happened during a run.
type EventKind string

const (
	RunStarted          EventKind = "run-started"
	PricesFetched       EventKind = "prices-fetched"
	SimulationStarted   EventKind = "simulation-started"
	Contribution        EventKind = "contribution"
	SimulationCompleted EventKind = "simulation-completed"
	MetricsComputed     EventKind = "metrics-computed"
)

// Event is a progress notification emitted by simulators and Compare.
type Event struct {
	Kind     EventKind
	Scenario string    // series name, empty for run level events
	Day      date.Date // zero when not tied to a day
	Value    float64   // value of the series after the event, when relevant
	Amount   float64   // contributed amount, or number of items for PricesFetched
	Message  string
}

// Observer receives events. Implementations must be safe for concurrent use
// since Compare runs both simulators at the same time.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

type nopObserver struct{}

func (nopObserver) Observe(Event) {}

// LogObserver returns an Observer writing events as structured log entries.
// Contributions are logged at debug level, everything else at info. The value
// and amount fields depend on the kind only, so a zero is still written.
func LogObserver(logger zerolog.Logger) Observer {
	return ObserverFunc(func(e Event) {
		level := zerolog.InfoLevel
		if e.Kind == Contribution {
			level = zerolog.DebugLevel
		}
		entry := logger.WithLevel(level).Str("event", string(e.Kind))
		if e.Scenario != "" {
			entry = entry.Str("scenario", e.Scenario)
		}
		if !e.Day.IsZero() {
			entry = entry.Stringer("day", e.Day)
		}
		switch e.Kind {
		case SimulationStarted, SimulationCompleted, MetricsComputed:
			entry = entry.Float64("value", e.Value)
		case Contribution:
			entry = entry.Float64("value", e.Value).Float64("amount", e.Amount)
		case PricesFetched:
			entry = entry.Float64("amount", e.Amount)
		}
		entry.Msg(e.Message)
	})
}

// Option configures simulators and Compare.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver sends progress events to o.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

func newOptions(opts []Option) options {
	o := options{observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
