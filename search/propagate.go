package search

// BackPropagate refreshes best_h and dead-end status from state upward
// to the root, per spec §4.6. It is written as an explicit loop rather
// than recursion (spec §9 Design Notes): back-propagation only ever
// climbs toward a single parent, so a loop is a faithful, stack-safe
// translation of the original recursive procedure.
//
// The early exit in the "best_h unchanged" branch is load-bearing: it
// is what makes repeated propagation idempotent and keeps per-expansion
// work O(depth) in the common case (spec §4.6 commentary). Note that
// the "already dead-end, still all children dead" branch has no such
// early exit and keeps climbing — that asymmetry is specified, not a
// bug.
func BackPropagate(store *Store, stats StatsSink, state StateID) {
	for {
		info := store.Get(state)
		n := NewNode(state, info)

		minH := Infinity
		allDead := true
		for _, c := range n.Children() {
			cn := NewNode(c, store.Get(c))
			if cn.IsDeadEnd() || cn.BestH() == Infinity {
				continue
			}
			if cn.BestH() < minH {
				minH = cn.BestH()
			}
			allDead = false
		}

		stop := false
		if allDead {
			if !n.IsDeadEnd() {
				n.MarkDeadEnd()
				n.SetBestH(Infinity)
				stats.IncDeadEnds()
			}
		} else {
			if n.BestH() == minH {
				stop = true
			} else {
				n.SetBestH(minH)
			}
		}
		if stop {
			return
		}

		parent := n.Parent()
		if parent.IsNone() {
			return
		}
		state = parent
	}
}

// ForwardPropagateG applies a signed real_g correction to every
// descendant of state (state itself is left untouched — callers update
// the re-parented node directly via Node.Reopen). state's own children
// are always updated, unconditionally, matching the original planner's
// for-loop; a child's own children are visited in turn only once we
// have confirmed that child is itself neither OPEN nor DEAD_END —
// otherwise the correction stops there, since that subtree is either
// not yet materialized (OPEN, no committed children) or already pruned
// (DEAD_END), per spec §4.6.
//
// Grounded on MonteCarloTreeSearch::reopen_g in the original planner,
// translated to an explicit worklist per spec §9's Design Notes.
func ForwardPropagateG(store *Store, state StateID, diff int) {
	n := NewNode(state, store.Get(state))
	queue := append([]StateID{}, n.Children()...)
	for _, c := range queue {
		NewNode(c, store.Get(c)).UpdateG(diff)
	}

	for i := 0; i < len(queue); i++ {
		cn := NewNode(queue[i], store.Get(queue[i]))
		if cn.IsDeadEnd() || cn.IsOpen() {
			continue
		}
		for _, gc := range cn.Children() {
			NewNode(gc, store.Get(gc)).UpdateG(diff)
			queue = append(queue, gc)
		}
	}
}
