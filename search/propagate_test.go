package search_test

import (
	"testing"

	"github.com/yotsuba/epsplan/search"
)

// buildTwoChildTree wires a root with two OPEN children at distinct
// best_h values, for propagation tests that don't need a full engine.
func buildTwoChildTree(lowH, highH int) (*search.Store, search.Node) {
	store := search.NewStore()
	root := search.NewNode(0, store.Get(0))
	root.OpenInitial(highH)
	root.Close()

	low := search.NewNode(1, store.Get(1))
	root.AddChild(1)
	low.Open(root, 1, 1, 1, lowH)

	high := search.NewNode(2, store.Get(2))
	root.AddChild(2)
	high.Open(root, 2, 1, 1, highH)

	return store, root
}

// TestBackPropagateIdempotent is the idempotence law of spec §8:
// calling back_propagate twice in a row on the same node must leave
// every touched node's best_h and status unchanged on the second call.
func TestBackPropagateIdempotent(t *testing.T) {
	store, root := buildTwoChildTree(2, 9)

	search.BackPropagate(store, search.NopStats{}, root.State())

	snapshotBestH := store.Get(0).BestH
	snapshotStatus := store.Get(0).Status

	search.BackPropagate(store, search.NopStats{}, root.State())

	if store.Get(0).BestH != snapshotBestH {
		t.Fatalf("best_h changed on second back_propagate: %d -> %d", snapshotBestH, store.Get(0).BestH)
	}
	if store.Get(0).Status != snapshotStatus {
		t.Fatalf("status changed on second back_propagate: %v -> %v", snapshotStatus, store.Get(0).Status)
	}
}

// TestBackPropagateTakesMinOverLiveChildren checks the core propagation
// rule in isolation: best_h becomes the minimum best_h among children
// that are neither DEAD_END nor at Infinity.
func TestBackPropagateTakesMinOverLiveChildren(t *testing.T) {
	store, root := buildTwoChildTree(2, 9)

	search.BackPropagate(store, search.NopStats{}, root.State())

	if got := store.Get(0).BestH; got != 2 {
		t.Fatalf("root best_h = %d, want 2", got)
	}
}

// TestBackPropagateMarksAllDeadChildrenDead is the "all children
// DEAD_END" property of spec §8: once every live child of a CLOSED node
// has been marked DEAD_END, the next back_propagate touching it must
// also mark it DEAD_END.
func TestBackPropagateMarksAllDeadChildrenDead(t *testing.T) {
	store, root := buildTwoChildTree(2, 9)
	search.NewNode(1, store.Get(1)).MarkDeadEnd()
	search.NewNode(2, store.Get(2)).MarkDeadEnd()

	search.BackPropagate(store, search.NopStats{}, root.State())

	info := store.Get(0)
	if !info.IsDeadEnd() {
		t.Fatalf("root status = %v, want DEAD_END", info.Status)
	}
	if info.BestH != search.Infinity {
		t.Fatalf("root best_h = %d, want Infinity", info.BestH)
	}
}

// TestForwardPropagateGSkipsOpenAndDeadEndSubtrees checks that the
// correction does not cross into a child's own children once that
// child is itself OPEN (not yet committed) or DEAD_END (already
// pruned) — only CLOSED descendants propagate further, per spec §4.6.
func TestForwardPropagateGSkipsOpenAndDeadEndSubtrees(t *testing.T) {
	store := search.NewStore()
	root := search.NewNode(0, store.Get(0))
	root.OpenInitial(0)

	openChild := search.NewNode(1, store.Get(1))
	root.AddChild(1)
	openChild.Open(root, 1, 1, 1, 0)
	// openChild stays OPEN; give it a child that must NOT be touched.
	grandchildUnderOpen := search.NewNode(3, store.Get(3))
	openChild.AddChild(3)
	grandchildUnderOpen.Open(openChild, 3, 1, 1, 0)

	deadChild := search.NewNode(2, store.Get(2))
	root.AddChild(2)
	deadChild.Open(root, 2, 1, 1, 0)
	deadChild.MarkDeadEnd()
	grandchildUnderDead := search.NewNode(4, store.Get(4))
	deadChild.AddChild(4)
	grandchildUnderDead.Open(deadChild, 4, 1, 1, 0)

	search.ForwardPropagateG(store, 0, 100)

	if store.Get(1).RealG != 1-100 {
		t.Fatalf("real_g(openChild) = %d, want %d (direct children of state always update)", store.Get(1).RealG, 1-100)
	}
	if store.Get(3).RealG != 2 {
		t.Fatalf("real_g(grandchild under OPEN) = %d, want unchanged 2", store.Get(3).RealG)
	}
	if store.Get(2).RealG != 1-100 {
		t.Fatalf("real_g(deadChild) = %d, want %d", store.Get(2).RealG, 1-100)
	}
	if store.Get(4).RealG != 2 {
		t.Fatalf("real_g(grandchild under DEAD_END) = %d, want unchanged 2", store.Get(4).RealG)
	}
}
