package config

import (
	"io"
	"log"

	"lazymc/stats"
	"lazymc/waitlist"
)

// Configures the exploration order of the ARG

// Default value is breadth first search.
type SearchStrategyOption struct {
	S waitlist.SearchStrategy
}

func (sso SearchStrategyOption) CheckOpt() {}

// Configures the number of cells the precision splits the values into

// Default value is one cell per value.
type PrecisionOption struct {
	Cells int
}

func (po PrecisionOption) CheckOpt() {}

// Refine by walking obligations backward instead of recomputing images forward

// Default value is forward refinement.
type BackwardOption struct{}

func (bo BackwardOption) CheckOpt() {}

// Report targets when they are removed from the waitlist instead of when they are created

// Default value is eager target detection.
type LazyTargetsOption struct{}

func (lto LazyTargetsOption) CheckOpt() {}

type MaxNodesOption struct{ N int }

func (mno MaxNodesOption) CheckOpt() {}

type RecorderOption struct{ R stats.Recorder }

func (ro RecorderOption) CheckOpt() {}

type LoggerOption struct{ L *log.Logger }

func (lo LoggerOption) CheckOpt() {}

// Configures io.writers that the final ARG will be exported to

// Can be applied multiple times to add multiple io.writers.
// Default value is no writers.
type ExportOption struct {
	W io.Writer
}

func (eo ExportOption) CheckOpt() {}
