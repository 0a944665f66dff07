// Package planfixture builds small, deterministic planning tasks for
// search package tests: a handful of states and operators wired up by
// hand, with explicit costs and heuristic values, so a test can assert
// exact tree shapes instead of just "it terminated".
package planfixture

import "github.com/yotsuba/epsplan/search"

// edge is one outgoing transition: applying op in from reaches to at
// cost (real) and adjustedCost (what feeds g).
type edge struct {
	op           search.OperatorID
	to           search.StateID
	cost         int
	adjustedCost int
}

// Task is a minimal StateRegistry + SuccessorGenerator + GoalTest +
// OperatorCosts + Heuristic, all backed by maps built with AddEdge,
// SetHeuristic and SetGoal. It is intentionally not safe for
// concurrent use, matching the engine it feeds.
type Task struct {
	initial search.StateID
	goals   map[search.StateID]bool
	out     map[search.StateID][]edge
	h       map[search.StateID]int
	known   map[search.StateID]bool

	NotifiedInitialState search.StateID
	notifyCalls          int
}

// NewTask returns an empty task rooted at initial.
func NewTask(initial search.StateID) *Task {
	return &Task{
		initial:              initial,
		goals:                make(map[search.StateID]bool),
		out:                  make(map[search.StateID][]edge),
		h:                    make(map[search.StateID]int),
		known:                map[search.StateID]bool{initial: true},
		NotifiedInitialState: search.NoStateID,
	}
}

// AddEdge records that op, applied in from, reaches to at the given
// real and adjusted costs. Edges are applicable in the order they were
// added, matching ApplicableOperators' determinism requirement.
func (t *Task) AddEdge(from search.StateID, op search.OperatorID, to search.StateID, cost, adjustedCost int) {
	t.out[from] = append(t.out[from], edge{op: op, to: to, cost: cost, adjustedCost: adjustedCost})
	t.known[from] = true
	t.known[to] = true
}

// Lookup implements search.StateRegistry, reporting whether id has ever
// appeared as an edge endpoint or the initial state of this task.
func (t *Task) Lookup(id search.StateID) (search.StateID, bool) {
	return id, t.known[id]
}

// SetHeuristic fixes the heuristic value returned for state, regardless
// of g. States with no recorded value evaluate to 0.
func (t *Task) SetHeuristic(state search.StateID, h int) {
	t.h[state] = h
}

// SetGoal marks state as satisfying the goal test.
func (t *Task) SetGoal(state search.StateID) {
	t.goals[state] = true
}

// InitialState implements search.StateRegistry.
func (t *Task) InitialState() search.StateID {
	return t.initial
}

// Successor implements search.StateRegistry by scanning from's outgoing
// edges for op. It panics if op is not applicable in from — a fixture
// bug, not a condition a real StateRegistry would hit.
func (t *Task) Successor(from search.StateID, op search.OperatorID) search.StateID {
	for _, e := range t.out[from] {
		if e.op == op {
			return e.to
		}
	}
	panic("planfixture: operator not applicable in state")
}

// ApplicableOperators implements search.SuccessorGenerator.
func (t *Task) ApplicableOperators(state search.StateID) []search.OperatorID {
	edges := t.out[state]
	ops := make([]search.OperatorID, len(edges))
	for i, e := range edges {
		ops[i] = e.op
	}
	return ops
}

// IsGoal implements search.GoalTest.
func (t *Task) IsGoal(state search.StateID) bool {
	return t.goals[state]
}

// Cost implements search.OperatorCosts by looking up the cost recorded
// on whichever edge carries op. Operators in these fixtures are unique
// per state pair, so the first match found by scanning all edges is
// sufficient.
func (t *Task) Cost(op search.OperatorID) int {
	e := t.findEdge(op)
	return e.cost
}

// AdjustedCost implements search.OperatorCosts.
func (t *Task) AdjustedCost(op search.OperatorID) int {
	e := t.findEdge(op)
	return e.adjustedCost
}

func (t *Task) findEdge(op search.OperatorID) edge {
	for _, edges := range t.out {
		for _, e := range edges {
			if e.op == op {
				return e
			}
		}
	}
	panic("planfixture: unknown operator")
}

// Evaluate implements search.Heuristic. States with no recorded value
// evaluate to 0, so a fixture only needs to call SetHeuristic on the
// states it cares about.
func (t *Task) Evaluate(state search.StateID, g int) int {
	return t.h[state]
}

// NotifyInitialState implements search.Heuristic, recording the state
// and call count so tests can assert the one-shot contract.
func (t *Task) NotifyInitialState(state search.StateID) {
	t.NotifiedInitialState = state
	t.notifyCalls++
}

// NotifyCalls reports how many times NotifyInitialState has fired.
func (t *Task) NotifyCalls() int {
	return t.notifyCalls
}
