package search

import "math/rand"

// Selector descends a tree from its root picking one child per level
// by epsilon-greedy over best_h, per spec §4.4. It is grounded on
// select_next_leaf_node in the original planner and on the teacher's
// Selector struct shape (mcts/select.go), but walks with an explicit
// loop instead of tail recursion (spec §9 Design Notes).
type Selector struct {
	Store   *Store
	Rand    *rand.Rand
	Epsilon float64
	Stats   StatsSink
}

// SelectLeaf returns an OPEN state reachable from root by repeated
// epsilon-greedy descent. root must not be DEAD_END.
//
// On pure exploration draws (including the epsilon=1 edge case) a
// child is picked uniformly from the entire child list, dead ends and
// infinite-h children included — spec §4.4 step 5 deliberately does
// not filter the explore branch the way the exploit branch filters
// step 6. In the degenerate case where exploitation finds no
// candidate (every child is DEAD_END or has best_h == Infinity), the
// current, already-CLOSED node is returned as-is: per spec this is a
// caller bug (the node should already have been marked DEAD_END by a
// prior BackPropagate), and returning it here lets the Expander's own
// IsOpen precondition surface the contract violation instead of
// papering over it.
func (s *Selector) SelectLeaf(root StateID) StateID {
	current := root
	for {
		n := NewNode(current, s.Store.Get(current))
		if n.IsOpen() {
			return current
		}

		children := n.Children()
		if len(children) == 0 {
			n.MarkDeadEnd()
			BackPropagate(s.Store, s.Stats, current)
			parent := n.Parent()
			if parent.IsNone() {
				return current
			}
			current = parent
			continue
		}

		if s.Rand.Float64() < s.Epsilon {
			current = children[s.Rand.Intn(len(children))]
			continue
		}

		chosen, ok := s.pickExploit(children)
		if !ok {
			return current
		}
		current = chosen
	}
}

// pickExploit implements spec §4.4 step 6: among children that are not
// DEAD_END and have best_h < Infinity, find the minimum best_h, collect
// every child attaining it, and pick one uniformly.
func (s *Selector) pickExploit(children []StateID) (StateID, bool) {
	minH := Infinity
	var candidates []StateID
	for _, c := range children {
		cn := NewNode(c, s.Store.Get(c))
		if cn.IsDeadEnd() || cn.BestH() == Infinity {
			continue
		}
		switch {
		case cn.BestH() < minH:
			minH = cn.BestH()
			candidates = candidates[:0]
			candidates = append(candidates, c)
		case cn.BestH() == minH:
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return NoStateID, false
	}
	return candidates[s.Rand.Intn(len(candidates))], true
}
