package search

// Node is a short-lived handle over a (state, *NodeInfo) pair, minted on
// demand by Store-backed lookups. It never outlives the mutation that
// might invalidate it because the underlying store is a map of stable
// pointers, not a slice that could reallocate out from under a handle —
// see the "stable-address store" design note in spec §9.
//
// All mutating methods assert their status precondition and call fail
// (log + panic) if it does not hold: these preconditions are
// programming contracts, not recoverable runtime conditions (spec §7).
type Node struct {
	state StateID
	info  *NodeInfo
}

// NewNode wraps info for state. Callers normally obtain a Node through
// Store-aware callers (Expander, Selector, BackPropagate, ...) rather than calling
// this directly.
func NewNode(state StateID, info *NodeInfo) Node {
	return Node{state: state, info: info}
}

func (n Node) State() StateID { return n.state }

func (n Node) IsNew() bool     { return n.info.IsNew() }
func (n Node) IsOpen() bool    { return n.info.IsOpen() }
func (n Node) IsClosed() bool  { return n.info.IsClosed() }
func (n Node) IsDeadEnd() bool { return n.info.IsDeadEnd() }

func (n Node) G() int               { return n.info.G }
func (n Node) RealG() int           { return n.info.RealG }
func (n Node) BestH() int           { return n.info.BestH }
func (n Node) Parent() StateID      { return n.info.ParentStateID }
func (n Node) Operator() OperatorID { return n.info.CreatingOperator }

// Children returns the live child list. The returned slice aliases the
// NodeInfo's backing array; callers must not mutate it.
func (n Node) Children() []StateID { return n.info.Children }

func (n Node) SetBestH(h int) { n.info.BestH = h }

// OpenInitial transitions NEW -> OPEN for the root: g = real_g = 0, no
// parent, no creating operator, best_h = h.
func (n Node) OpenInitial(h int) {
	if !n.info.IsNew() {
		fail("open_initial", n.state, "node is not NEW")
	}
	n.info.Status = StatusOpen
	n.info.G = 0
	n.info.RealG = 0
	n.info.ParentStateID = NoStateID
	n.info.CreatingOperator = NoOperatorID
	n.info.BestH = h
}

// Open transitions NEW -> OPEN as a child of parent reached via op.
func (n Node) Open(parent Node, op OperatorID, cost, adjustedCost, h int) {
	if !n.info.IsNew() {
		fail("open", n.state, "node is not NEW")
	}
	n.info.Status = StatusOpen
	n.info.G = parent.G() + adjustedCost
	n.info.RealG = parent.RealG() + cost
	n.info.ParentStateID = parent.State()
	n.info.CreatingOperator = op
	n.info.BestH = h
}

// Reopen transitions {OPEN, CLOSED} -> OPEN under a new, cheaper parent.
// best_h is left untouched, per spec §4.2.
func (n Node) Reopen(parent Node, op OperatorID, cost, adjustedCost int) {
	if !(n.info.IsOpen() || n.info.IsClosed()) {
		fail("reopen", n.state, "node is neither OPEN nor CLOSED")
	}
	n.info.Status = StatusOpen
	n.info.G = parent.G() + adjustedCost
	n.info.RealG = parent.RealG() + cost
	n.info.ParentStateID = parent.State()
	n.info.CreatingOperator = op
}

// Close transitions OPEN -> CLOSED.
func (n Node) Close() {
	if !n.info.IsOpen() {
		fail("close", n.state, "node is not OPEN")
	}
	n.info.Status = StatusClosed
}

// MarkDeadEnd transitions any status to DEAD_END.
func (n Node) MarkDeadEnd() {
	n.info.Status = StatusDeadEnd
}

// UpdateG applies a signed correction to real_g: real_g -= diff. Used
// exclusively by forward g-propagation after a re-parenting (spec §4.6);
// it never touches g, matching the original planner's reopen_g.
func (n Node) UpdateG(diff int) {
	n.info.RealG -= diff
}

// AddChild appends id to the live child list if it is not already
// present and is not this node's own parent (guards against the
// "re-parenting to self" contract violation called out in spec §7).
func (n Node) AddChild(id StateID) {
	if id == n.info.ParentStateID {
		fail("add_child", n.state, "refusing to add own parent as a child")
	}
	if n.info.HasChild(id) {
		return
	}
	n.info.Children = append(n.info.Children, id)
}

// RemoveChild deletes the first occurrence of id from the live child
// list, per the "remove first occurrence" reading of the Open Question
// in spec §9.
func (n Node) RemoveChild(id StateID) {
	children := n.info.Children
	for i, c := range children {
		if c == id {
			n.info.Children = append(children[:i], children[i+1:]...)
			return
		}
	}
}
