package search

// StateRegistry is the host-owned canonicalizing state store described
// in spec §6: state equality implies identical id.
type StateRegistry interface {
	// InitialState returns the id of the task's initial state.
	InitialState() StateID
	// Successor returns the (canonicalized) id of the state reached by
	// applying op to state.
	Successor(state StateID, op OperatorID) StateID
	// Lookup reports whether id names a state the registry has actually
	// produced (via InitialState or Successor). The engine never calls
	// this itself — StateID already doubles as the canonical state
	// identity for every operation it performs — but hosts that embed
	// richer state objects behind their registry rely on it to resolve
	// an id back to one, so it stays part of the contract.
	Lookup(id StateID) (StateID, bool)
}

// SuccessorGenerator enumerates applicable operators for a state, in a
// deterministic order for a given state.
type SuccessorGenerator interface {
	ApplicableOperators(state StateID) []OperatorID
}

// GoalTest decides whether a state satisfies the task's goal.
type GoalTest interface {
	IsGoal(state StateID) bool
}

// OperatorCosts exposes both the real and the host-adjusted cost of an
// operator; the adjusted cost feeds g, the real cost feeds real_g.
type OperatorCosts interface {
	Cost(op OperatorID) int
	AdjustedCost(op OperatorID) int
}

// Heuristic evaluates a state, returning a value in [0, Infinity].
// Infinity denotes "provably dead". NotifyInitialState is a one-shot
// hook called exactly once, before the first Evaluate call.
type Heuristic interface {
	Evaluate(state StateID, g int) int
	NotifyInitialState(state StateID)
}

// StatsSink receives the counters spec §6 asks the host to maintain.
// Engine never reads these back; it only increments them.
type StatsSink interface {
	IncGenerated()
	IncEvaluated()
	IncExpanded()
	IncReopened()
	IncDeadEnds()
}

// NopStats is a StatsSink that discards every increment. Useful in
// tests, and substituted by NewEngine and NewEliminatingEngine when they
// are given a nil sink.
type NopStats struct{}

func (NopStats) IncGenerated() {}
func (NopStats) IncEvaluated() {}
func (NopStats) IncExpanded()  {}
func (NopStats) IncReopened()  {}
func (NopStats) IncDeadEnds()  {}

// Counters is a minimal in-memory StatsSink implementation, handed out
// for hosts (and tests) that just want plain counts rather than
// wiring up their own sink.
type Counters struct {
	Generated, Evaluated, Expanded, Reopened, DeadEnds int
}

func (c *Counters) IncGenerated() { c.Generated++ }
func (c *Counters) IncEvaluated() { c.Evaluated++ }
func (c *Counters) IncExpanded()  { c.Expanded++ }
func (c *Counters) IncReopened()  { c.Reopened++ }
func (c *Counters) IncDeadEnds()  { c.DeadEnds++ }
