package stats

import (
	"fmt"
	"time"
)

// Observes the progress of a check.
//
// A Recorder is purely observational: it must not influence the exploration.
type Recorder interface {
	StartAlgorithm()
	StopAlgorithm()
	StartClosing()
	StopClosing()
	StartExpanding()
	StopExpanding()

	// A candidate coverer has been considered
	CheckCoverage()
	// A candidate passed the cheap pre-check and covering was attempted
	AttemptCoverage()
	// The covering succeeded
	SuccessfulCoverage()
	// Refinement was triggered by an infeasible successor
	Refine()
	// Nodes lost their covering because of refinement
	Uncover(n int)
}

// The statistics of a single check
type Statistics struct {
	AlgorithmTime time.Duration
	ClosingTime   time.Duration
	ExpandingTime time.Duration

	CoverageChecks      int
	CoverageAttempts    int
	SuccessfulCoverages int
	Refinements         int
	Uncoverings         int

	ArgNodes int
	ArgDepth int
}

func (s Statistics) String() string {
	return fmt.Sprintf(
		"Algorithm: %v Closing: %v Expanding: %v CoverageChecks: %v CoverageAttempts: %v SuccessfulCoverages: %v Refinements: %v Uncoverings: %v ArgNodes: %v ArgDepth: %v",
		s.AlgorithmTime, s.ClosingTime, s.ExpandingTime,
		s.CoverageChecks, s.CoverageAttempts, s.SuccessfulCoverages, s.Refinements, s.Uncoverings,
		s.ArgNodes, s.ArgDepth,
	)
}

// Collects the Statistics of a check
type Builder struct {
	stats Statistics

	algorithmStart time.Time
	closingStart   time.Time
	expandingStart time.Time

	now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

func (b *Builder) StartAlgorithm() { b.algorithmStart = b.now() }
func (b *Builder) StopAlgorithm()  { b.stats.AlgorithmTime += b.now().Sub(b.algorithmStart) }
func (b *Builder) StartClosing()   { b.closingStart = b.now() }
func (b *Builder) StopClosing()    { b.stats.ClosingTime += b.now().Sub(b.closingStart) }
func (b *Builder) StartExpanding() { b.expandingStart = b.now() }
func (b *Builder) StopExpanding()  { b.stats.ExpandingTime += b.now().Sub(b.expandingStart) }

func (b *Builder) CheckCoverage()      { b.stats.CoverageChecks++ }
func (b *Builder) AttemptCoverage()    { b.stats.CoverageAttempts++ }
func (b *Builder) SuccessfulCoverage() { b.stats.SuccessfulCoverages++ }
func (b *Builder) Refine()             { b.stats.Refinements++ }
func (b *Builder) Uncover(n int)       { b.stats.Uncoverings += n }

// Returns the collected statistics, completed with the size of the ARG
func (b *Builder) Build(argNodes, argDepth int) Statistics {
	out := b.stats
	out.ArgNodes = argNodes
	out.ArgDepth = argDepth
	return out
}

// Forwards every observation to all of the recorders
type multi []Recorder

func Multi(recorders ...Recorder) Recorder {
	return multi(recorders)
}

func (m multi) StartAlgorithm() {
	for _, r := range m {
		r.StartAlgorithm()
	}
}

func (m multi) StopAlgorithm() {
	for _, r := range m {
		r.StopAlgorithm()
	}
}

func (m multi) StartClosing() {
	for _, r := range m {
		r.StartClosing()
	}
}

func (m multi) StopClosing() {
	for _, r := range m {
		r.StopClosing()
	}
}

func (m multi) StartExpanding() {
	for _, r := range m {
		r.StartExpanding()
	}
}

func (m multi) StopExpanding() {
	for _, r := range m {
		r.StopExpanding()
	}
}

func (m multi) CheckCoverage() {
	for _, r := range m {
		r.CheckCoverage()
	}
}

func (m multi) AttemptCoverage() {
	for _, r := range m {
		r.AttemptCoverage()
	}
}

func (m multi) SuccessfulCoverage() {
	for _, r := range m {
		r.SuccessfulCoverage()
	}
}

func (m multi) Refine() {
	for _, r := range m {
		r.Refine()
	}
}

func (m multi) Uncover(n int) {
	for _, r := range m {
		r.Uncover(n)
	}
}

// Discards all observations
type Nop struct{}

func (Nop) StartAlgorithm()     {}
func (Nop) StopAlgorithm()      {}
func (Nop) StartClosing()       {}
func (Nop) StopClosing()        {}
func (Nop) StartExpanding()     {}
func (Nop) StopExpanding()      {}
func (Nop) CheckCoverage()      {}
func (Nop) AttemptCoverage()    {}
func (Nop) SuccessfulCoverage() {}
func (Nop) Refine()             {}
func (Nop) Uncover(int)         {}
