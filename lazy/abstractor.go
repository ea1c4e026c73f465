package lazy

import (
	"context"
	"errors"
	"log"

	"lazymc/analysis"
	"lazymc/arg"
	"lazymc/partition"
	"lazymc/stats"
	"lazymc/waitlist"
)

var ErrNodeBudget = errors.New("lazy: the ARG exceeded the node budget")

// The result of a check
type Result struct {
	Verdict analysis.Verdict
	// The target node that was reached. arg.NoNode if the system is safe.
	Target     arg.NodeID
	Statistics stats.Statistics
}

func (r Result) IsSafe() bool {
	return r.Verdict == analysis.Safe
}

func (r Result) IsUnsafe() bool {
	return r.Verdict == analysis.Unsafe
}

// Builds and refines an ARG until it proves that no target is reachable, or reaches a target.
//
// S is the state of the analysis, Act the actions of the system, P the precision and
// K the projection used to find coverage candidates.
type Abstractor[S analysis.TargetState, Act any, P any, K comparable] struct {
	lts               analysis.Lts[S, Act]
	initFunc          analysis.InitFunc[S, P]
	transFunc         analysis.TransFunc[S, Act, P]
	algorithmStrategy AlgorithmStrategy[S, Act, K]
	prec              P

	cfg config

	// Number of ARGs created by the abstractor
	argNo int
}

// Create an Abstractor.
//
// The initial states are computed under prec. See the Options for the remaining configuration.
func NewAbstractor[S analysis.TargetState, Act any, P any, K comparable](
	lts analysis.Lts[S, Act],
	initFunc analysis.InitFunc[S, P],
	transFunc analysis.TransFunc[S, Act, P],
	algorithmStrategy AlgorithmStrategy[S, Act, K],
	prec P,
	opts ...Option,
) *Abstractor[S, Act, P, K] {
	if lts == nil || initFunc == nil || transFunc == nil || algorithmStrategy == nil {
		log.Panicf("lazy: the lts, init function, transition function and algorithm strategy must be provided")
	}
	return &Abstractor[S, Act, P, K]{
		lts:               lts,
		initFunc:          initFunc,
		transFunc:         transFunc,
		algorithmStrategy: algorithmStrategy,
		prec:              prec,
		cfg:               newConfig(opts),
	}
}

// Create an ARG containing the initial states. Initial states that are targets are flagged.
func (a *Abstractor[S, Act, P, K]) CreateArg() *arg.ARG[S, Act] {
	a.argNo++
	g := arg.New[S, Act](a.argNo)
	for _, state := range a.initFunc.InitStates(a.prec) {
		g.CreateInitNode(state, state.IsTarget())
	}
	return g
}

// Explore the ARG under the precision until a verdict is reached.
//
// Returns an error only if the context is done or the node budget is exceeded before a verdict is reached.
func (a *Abstractor[S, Act, P, K]) Check(ctx context.Context, g *arg.ARG[S, Act], prec P) (Result, error) {
	return newCheckMethod(a, g, prec).run(ctx)
}

// The state of a single check
type checkMethod[S analysis.TargetState, Act any, P any, K comparable] struct {
	a    *Abstractor[S, Act, P, K]
	g    *arg.ARG[S, Act]
	prec P

	builder *stats.Builder
	rec     stats.Recorder

	passed  *partition.Partition[arg.NodeID, K]
	waiting waitlist.Waitlist[arg.NodeID]
}

func newCheckMethod[S analysis.TargetState, Act any, P any, K comparable](a *Abstractor[S, Act, P, K], g *arg.ARG[S, Act], prec P) *checkMethod[S, Act, P, K] {
	builder := stats.NewBuilder()
	return &checkMethod[S, Act, P, K]{
		a:       a,
		g:       g,
		prec:    prec,
		builder: builder,
		rec:     stats.Multi(builder, a.cfg.recorder),
		passed: partition.Of(func(id arg.NodeID) K {
			return a.algorithmStrategy.Projection(g.Node(id).State())
		}),
		waiting: waitlist.Create[arg.NodeID](a.cfg.searchStrategy),
	}
}

func (m *checkMethod[S, Act, P, K]) run(ctx context.Context) (Result, error) {
	m.rec.StartAlgorithm()

	for _, id := range m.g.InitNodes() {
		if m.g.Node(id).IsTarget() {
			return m.stop(analysis.Unsafe, id), nil
		}
	}

	m.waiting.AddAll(m.g.InitNodes())
	for !m.waiting.IsEmpty() {
		if err := ctx.Err(); err != nil {
			m.stop(analysis.Safe, arg.NoNode)
			return Result{}, err
		}
		if m.a.cfg.maxNodes > 0 && m.g.Len() > m.a.cfg.maxNodes {
			m.stop(analysis.Safe, arg.NoNode)
			return Result{}, ErrNodeBudget
		}

		v := m.waiting.Remove()
		node := m.g.Node(v)
		if !node.IsFeasible() {
			log.Panicf("lazy: infeasible node %v in the waitlist", v)
		}
		if m.a.cfg.targetDetection == LazyTargets && node.IsTarget() {
			return m.stop(analysis.Unsafe, v), nil
		}

		m.close(v)
		if !node.IsCovered() {
			if target, unsafe := m.expand(v); unsafe {
				return m.stop(analysis.Unsafe, target), nil
			}
		}
	}

	return m.stop(analysis.Safe, arg.NoNode), nil
}

func (m *checkMethod[S, Act, P, K]) stop(verdict analysis.Verdict, target arg.NodeID) Result {
	m.rec.StopAlgorithm()

	depth := 0
	for _, id := range m.g.Nodes() {
		if d := m.g.Node(id).Depth(); d > depth {
			depth = d
		}
	}
	statistics := m.builder.Build(m.g.Len(), depth)
	m.a.cfg.logger.Printf("ARG %v: %v. %v", m.g.ID(), verdict, statistics)
	return Result{
		Verdict:    verdict,
		Target:     target,
		Statistics: statistics,
	}
}

// Try to cover the node with one of the passed nodes.
// The most recently passed nodes are tried first.
func (m *checkMethod[S, Act, P, K]) close(coveree arg.NodeID) {
	m.rec.StartClosing()
	defer m.rec.StopClosing()

	for _, coverer := range m.passed.GetRecentFirst(coveree) {
		m.rec.CheckCoverage()
		if !m.a.algorithmStrategy.MightCover(m.g, coveree, coverer) {
			continue
		}
		m.rec.AttemptCoverage()

		uncovered := []arg.NodeID{}
		m.a.algorithmStrategy.Cover(m.g, coveree, coverer, &uncovered)
		m.requeue(uncovered, coveree)

		if m.g.Node(coveree).IsCovered() {
			m.rec.SuccessfulCoverage()
			return
		}
	}
}

// Expand the node by adding a child for every feasible successor.
//
// Returns the id of a reached target and true if a target was reached and target detection is eager.
func (m *checkMethod[S, Act, P, K]) expand(node arg.NodeID) (arg.NodeID, bool) {
	m.rec.StartExpanding()
	defer m.rec.StopExpanding()

	for _, action := range m.a.lts.EnabledActions(m.g.Node(node).State()) {
		// Read the state for every action since blocking may have strengthened it
		succStates := m.a.transFunc.SuccStates(m.g.Node(node).State(), action, m.prec)
		for _, succ := range succStates {
			if succ.IsBottom() {
				m.rec.Refine()
				uncovered := []arg.NodeID{}
				m.a.algorithmStrategy.Block(m.g, node, action, succ, &uncovered)
				m.requeue(uncovered, arg.NoNode)
				continue
			}

			target := succ.IsTarget()
			succNode := m.g.CreateSuccNode(node, action, succ, target)
			if target && m.a.cfg.targetDetection == EagerTargets {
				return succNode, true
			}
			m.waiting.Add(succNode)
		}
	}

	m.g.MarkExpanded(node)
	m.passed.Add(node)
	return arg.NoNode, false
}

// Add the uncovered nodes back to the waitlist, except the provided node
func (m *checkMethod[S, Act, P, K]) requeue(uncovered []arg.NodeID, except arg.NodeID) {
	if len(uncovered) == 0 {
		return
	}
	m.rec.Uncover(len(uncovered))
	m.a.cfg.logger.Printf("ARG %v: refinement uncovered %v", m.g.ID(), uncovered)
	for _, id := range uncovered {
		if id != except {
			m.waiting.Add(id)
		}
	}
}
