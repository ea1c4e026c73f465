package lazy

import (
	"io"
	"log"

	"lazymc/stats"
	"lazymc/waitlist"
)

// Determines when a reachable target is reported
type TargetDetection int

const (
	// Stop as soon as a target successor is created
	EagerTargets TargetDetection = iota
	// Flag target successors when they are created, but only stop once a target is removed from the waitlist
	LazyTargets
)

func (td TargetDetection) String() string {
	switch td {
	case EagerTargets:
		return "EagerTargets"
	case LazyTargets:
		return "LazyTargets"
	default:
		return "Unknown"
	}
}

type Option interface{}

type searchStrategyOption struct{ s waitlist.SearchStrategy }

// Configure the exploration order.
//
// Default value is waitlist.BFS
func WithSearchStrategy(s waitlist.SearchStrategy) Option {
	return searchStrategyOption{s: s}
}

type targetDetectionOption struct{ td TargetDetection }

// Configure when reachable targets are reported.
//
// Default value is EagerTargets
func WithTargetDetection(td TargetDetection) Option {
	return targetDetectionOption{td: td}
}

type recorderOption struct{ r stats.Recorder }

// Report the progress of every check to the recorder.
//
// The statistics of a check are always collected in its Result. The recorder receives the same observations.
func WithRecorder(r stats.Recorder) Option {
	return recorderOption{r: r}
}

type maxNodesOption struct{ n int }

// Stop the check with ErrNodeBudget when the ARG grows beyond n nodes.
//
// Default value is no limit.
func MaxNodes(n int) Option {
	return maxNodesOption{n: n}
}

type loggerOption struct{ l *log.Logger }

// Log verdicts and refinements to the logger.
//
// Default is to discard the log.
func WithLogger(l *log.Logger) Option {
	return loggerOption{l: l}
}

type config struct {
	searchStrategy  waitlist.SearchStrategy
	targetDetection TargetDetection
	recorder        stats.Recorder
	maxNodes        int
	logger          *log.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		searchStrategy:  waitlist.BFS,
		targetDetection: EagerTargets,
		recorder:        stats.Nop{},
		maxNodes:        0,
		logger:          log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		switch t := opt.(type) {
		case searchStrategyOption:
			cfg.searchStrategy = t.s
		case targetDetectionOption:
			cfg.targetDetection = t.td
		case recorderOption:
			cfg.recorder = t.r
		case maxNodesOption:
			cfg.maxNodes = t.n
		case loggerOption:
			cfg.logger = t.l
		default:
			log.Panicf("lazy: unknown option %T", opt)
		}
	}
	return cfg
}
