package search

// Expander applies the successor generator to an OPEN leaf, creating
// new children or re-parenting existing ones onto a cheaper path, per
// spec §4.5. Grounded on MonteCarloTreeSearch::expand_tree in the
// original planner and on the teacher's child-discovery branch inside
// Node.SelectAndExpansion (mcts/mcts.go), generalized from "look up an
// existing game-tree node" to "open, reopen, or leave alone a planning
// NodeInfo".
type Expander struct {
	Store              *Store
	Registry           StateRegistry
	Successors         SuccessorGenerator
	Goal               GoalTest
	Costs              OperatorCosts
	Heuristic          Heuristic
	Stats              StatsSink
	Bound              int
	ReopenClosedNodes  bool
}

// Plan is the operator sequence from root to a goal state, returned
// once Expand reports Solved.
type Plan []OperatorID

// ExpandResult is the outcome of a single Expand call.
type ExpandResult struct {
	Outcome Outcome
	Plan    Plan
}

// Outcome distinguishes the three driver-facing outcomes of spec §7.
type Outcome uint8

const (
	InProgress Outcome = iota
	Solved
	Failed
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "IN_PROGRESS"
	case Solved:
		return "SOLVED"
	case Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Expand runs spec §4.5 to completion for the OPEN leaf state L.
func (e *Expander) Expand(leaf StateID) ExpandResult {
	l := NewNode(leaf, e.Store.Get(leaf))
	if !l.IsOpen() {
		fail("expand", leaf, "leaf is not OPEN")
	}
	l.Close()
	e.Stats.IncExpanded()

	ops := e.Successors.ApplicableOperators(leaf)
	if len(ops) == 0 {
		l.MarkDeadEnd()
		l.SetBestH(Infinity)
		e.Stats.IncDeadEnds()
		return ExpandResult{Outcome: InProgress}
	}

	for _, op := range ops {
		e.Stats.IncGenerated()
		succState := e.Registry.Successor(leaf, op)
		ns := NewNode(succState, e.Store.Get(succState))
		succGOld := ns.RealG()

		switch {
		case ns.IsNew():
			e.openNewSuccessor(l, ns, op)
		case ns.IsClosed() && e.ReopenClosedNodes:
			e.maybeReopen(l, ns, op, succGOld)
		}

		if e.Goal.IsGoal(succState) {
			plan := TracePath(e.Store, succState)
			return ExpandResult{Outcome: Solved, Plan: plan}
		}
	}

	return ExpandResult{Outcome: InProgress}
}

func (e *Expander) openNewSuccessor(parent, ns Node, op OperatorID) {
	parent.AddChild(ns.State())
	h := e.Heuristic.Evaluate(ns.State(), parent.G()+e.Costs.AdjustedCost(op))
	e.Stats.IncEvaluated()
	ns.Open(parent, op, e.Costs.Cost(op), e.Costs.AdjustedCost(op), h)
	if h >= e.Bound || ns.RealG() >= e.Bound {
		ns.MarkDeadEnd()
		ns.SetBestH(Infinity)
	}
}

func (e *Expander) maybeReopen(parent, ns Node, op OperatorID, succGOld int) {
	newSuccG := parent.RealG() + e.Costs.Cost(op)
	if newSuccG >= succGOld {
		return
	}
	e.Stats.IncReopened()

	previousParent := NewNode(ns.Parent(), e.Store.Get(ns.Parent()))
	previousParent.RemoveChild(ns.State())
	parent.AddChild(ns.State())

	ns.Reopen(parent, op, e.Costs.Cost(op), e.Costs.AdjustedCost(op))
	ForwardPropagateG(e.Store, ns.State(), succGOld-newSuccG)
	BackPropagate(e.Store, e.Stats, previousParent.State())
}
