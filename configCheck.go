package lazymc

import (
	"context"
	"io"
	"log"

	"lazymc/analysis"
	"lazymc/checking"
	"lazymc/config"
	"lazymc/explicit"
	"lazymc/itp"
	"lazymc/lazy"
	"lazymc/stats"
	"lazymc/waitlist"
)

// Check whether an error location of the system is reachable.
//
// All CheckOptions are optional. Default values will be used if no values are provided.
// By default the values are tracked exactly, the ARG is explored breadth first,
// refinement is forward and targets are reported as soon as they are created.
//
// Returns a checking.CheckerResponse containing the verdict and the counterexample, if any.
// Returns an error if the context is done or the node budget is exceeded before a verdict is reached.
func Check(ctx context.Context, sys *explicit.System, opts ...CheckOption) (checking.CheckerResponse, error) {
	var (
		cells    = sys.Size
		backward = false

		lazyOpts = []lazy.Option{}
		export   []io.Writer
	)

	for _, opt := range opts {
		switch t := opt.(type) {
		case config.SearchStrategyOption:
			lazyOpts = append(lazyOpts, lazy.WithSearchStrategy(t.S))
		case config.PrecisionOption:
			cells = t.Cells
		case config.BackwardOption:
			backward = true
		case config.LazyTargetsOption:
			lazyOpts = append(lazyOpts, lazy.WithTargetDetection(lazy.LazyTargets))
		case config.MaxNodesOption:
			lazyOpts = append(lazyOpts, lazy.MaxNodes(t.N))
		case config.RecorderOption:
			lazyOpts = append(lazyOpts, lazy.WithRecorder(t.R))
		case config.LoggerOption:
			lazyOpts = append(lazyOpts, lazy.WithLogger(t.L))
		case config.ExportOption:
			export = append(export, t.W)
		default:
			log.Panicf("Unknown check option %T", opt)
		}
	}

	d := itp.Domain[explicit.State, explicit.Set, explicit.Obligation, *explicit.Edge, analysis.UnitPrec]{
		Lattice:      sys.Lattice(),
		Interpolator: sys.Interpolator(),
		Concretizer:  explicit.Concretizer{},
		InvTransFunc: explicit.InvTransFunc{},
	}
	var refiner itp.Refiner[explicit.State, explicit.Set, explicit.Obligation, *explicit.Edge]
	if backward {
		refiner = itp.NewBwRefiner(d)
	} else {
		// Refinement recomputes images exactly, otherwise the image of a blocked parent may not refute the obligation
		refiner = itp.NewFwRefiner[explicit.State, explicit.Set, explicit.Obligation, *explicit.Edge, analysis.UnitPrec, explicit.Precision](d, explicit.AbstrTransFunc{}, sys.Exact())
	}
	strategy := itp.NewStrategy(d, refiner, explicit.Projection)

	prec := sys.Cells(cells)
	abstractor := lazy.NewAbstractor[explicit.ItpState, *explicit.Edge, explicit.Precision, string](
		sys.Lts(), sys.InitFunc(), sys.TransFunc(), strategy, prec, lazyOpts...,
	)
	g := abstractor.CreateArg()
	result, err := abstractor.Check(ctx, g, prec)
	if err != nil {
		return nil, err
	}

	for _, w := range export {
		g.Export(w)
	}
	return checking.NewResponse(g, result), nil
}

// A option used to configure a check
type CheckOption interface {
	// noop method
	CheckOpt()
}

// Explore the ARG breadth first.
//
// Counterexamples found with breadth first search are as short as possible.
func BFS() CheckOption {
	return config.SearchStrategyOption{S: waitlist.BFS}
}

// Explore the ARG depth first.
func DFS() CheckOption {
	return config.SearchStrategyOption{S: waitlist.DFS}
}

// Explore the ARG in a random order.
//
// The seed makes the exploration reproducible.
func RandomSearch(seed int64) CheckOption {
	return config.SearchStrategyOption{S: waitlist.Random(seed)}
}

// Use the provided search strategy
func WithSearchStrategy(s waitlist.SearchStrategy) CheckOption {
	return config.SearchStrategyOption{S: s}
}

// Configure how precisely the exploration tracks the values.
//
// The values are split into cells consecutive values. Values in the same cell are not
// distinguished until refinement separates them.
// Default value is the size of the system, tracking every value exactly.
func WithPrecision(cells int) CheckOption {
	return config.PrecisionOption{Cells: cells}
}

// Use backward refinement.
//
// Backward refinement pushes obligations to the root before strengthening and does not
// recompute abstract images. Default is forward refinement.
func Backward() CheckOption {
	return config.BackwardOption{}
}

// Report a reachable target when it is removed from the waitlist instead of when it is created.
func LazyTargetDetection() CheckOption {
	return config.LazyTargetsOption{}
}

// Stop the check with lazy.ErrNodeBudget when the ARG grows beyond n nodes.
//
// Default value is no limit.
func MaxNodes(n int) CheckOption {
	return config.MaxNodesOption{N: n}
}

// Report the progress of the check to the recorder
func WithRecorder(r stats.Recorder) CheckOption {
	return config.RecorderOption{R: r}
}

// Log the verdict and refinements to the logger.
//
// Default is to discard the log.
func WithLogger(l *log.Logger) CheckOption {
	return config.LoggerOption{L: l}
}

// Export the final ARG to the writer in Newick format
//
// Can be applied multiple times to add multiple io.writers.
func Export(w io.Writer) CheckOption {
	return config.ExportOption{W: w}
}
