package search

// maxPathLength bounds the path tracer's walk. Acyclicity (spec §3)
// guarantees termination well before this; exceeding it means the
// parent relation has a cycle, which is a contract violation, not a
// big-task edge case.
const maxPathLength = 1 << 20

// TracePath walks parent pointers from goal back to the root, collecting
// the operator that created each node along the way, then reverses the
// result so it reads root-to-goal. It is the Path tracer of spec §4.3,
// written as an explicit loop rather than recursion per the Design
// Notes in spec §9.
func TracePath(store *Store, goal StateID) []OperatorID {
	var reversed []OperatorID
	current := goal
	for i := 0; ; i++ {
		if i > maxPathLength {
			fail("trace_path", current, "parent chain exceeds safety bound; acyclicity invariant violated")
		}
		info := store.Get(current)
		if info.CreatingOperator.IsNone() {
			break
		}
		reversed = append(reversed, info.CreatingOperator)
		current = info.ParentStateID
	}
	plan := make([]OperatorID, len(reversed))
	for i, op := range reversed {
		plan[len(reversed)-1-i] = op
	}
	return plan
}

// Replay applies plan to the initial state of registry in order,
// returning the resulting state and the accumulated real cost. It is
// the mechanism behind the "path trace round-trip" law in spec §8:
// replaying the plan returned by a solved Engine must reach a goal
// state whose accumulated real cost equals the goal node's real_g.
//
// Grounded on the teacher's solver.Playout loop shape (push actions
// until the state function says to stop), generalized from a game
// player to a fixed operator sequence.
func Replay(registry StateRegistry, costs OperatorCosts, initial StateID, plan []OperatorID) (StateID, int) {
	state := initial
	realCost := 0
	for _, op := range plan {
		state = registry.Successor(state, op)
		realCost += costs.Cost(op)
	}
	return state, realCost
}
