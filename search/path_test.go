package search_test

import (
	"math/rand"
	"testing"

	"github.com/yotsuba/epsplan/internal/planfixture"
	"github.com/yotsuba/epsplan/search"
)

func TestTracePathAtRootIsEmpty(t *testing.T) {
	store := search.NewStore()
	root := search.NewNode(0, store.Get(0))
	root.OpenInitial(0)

	plan := search.TracePath(store, 0)
	if len(plan) != 0 {
		t.Fatalf("plan = %v, want empty", plan)
	}
}

func TestTracePathFollowsParentChain(t *testing.T) {
	store := search.NewStore()
	root := search.NewNode(0, store.Get(0))
	root.OpenInitial(3)

	a := search.NewNode(1, store.Get(1))
	root.AddChild(1)
	a.Open(root, 100, 1, 1, 2)

	b := search.NewNode(2, store.Get(2))
	a.AddChild(2)
	b.Open(a, 200, 1, 1, 1)

	plan := search.TracePath(store, 2)
	want := []search.OperatorID{100, 200}
	if len(plan) != len(want) {
		t.Fatalf("plan = %v, want %v", plan, want)
	}
	for i, op := range want {
		if plan[i] != op {
			t.Fatalf("plan = %v, want %v", plan, want)
		}
	}
}

// TestRandomChainGConsistency is a property test over randomly generated
// linear chains (spec §8's g/real_g consistency invariant): for every
// reachable node other than the root, g must equal parent.g +
// adjusted_cost(op) and real_g must equal parent.real_g + cost(op).
// Grounded on the teacher's own style of seeding a fixed Mersenne
// Twister and looping over many random trials rather than using a
// property-testing framework (crow_test.go's use of omw.NewMt19937).
func TestRandomChainGConsistency(t *testing.T) {
	r := rand.New(rand.NewSource(99))

	for trial := 0; trial < 200; trial++ {
		length := 1 + r.Intn(8)
		task := planfixture.NewTask(0)
		for i := 0; i < length; i++ {
			from := search.StateID(i)
			to := search.StateID(i + 1)
			op := search.OperatorID(i)
			cost := 1 + r.Intn(5)
			adjustedCost := 1 + r.Intn(5)
			task.AddEdge(from, op, to, cost, adjustedCost)
		}
		task.SetGoal(search.StateID(length))

		e := search.NewEngine(task, task, task, task, task, nil, search.WithEpsilon(0))
		e.Initialize()

		outcome := search.InProgress
		for i := 0; i < length+1 && outcome == search.InProgress; i++ {
			outcome = e.Step()
		}
		if outcome != search.Solved {
			t.Fatalf("trial %d: outcome = %v, want Solved", trial, outcome)
		}

		for i := 1; i <= length; i++ {
			node := e.Store().Get(search.StateID(i))
			parent := e.Store().Get(search.StateID(i - 1))
			if node.G != parent.G+task.AdjustedCost(search.OperatorID(i-1)) {
				t.Fatalf("trial %d: g(%d) = %d, want parent.g + adjusted_cost", trial, i, node.G)
			}
			if node.RealG != parent.RealG+task.Cost(search.OperatorID(i-1)) {
				t.Fatalf("trial %d: real_g(%d) = %d, want parent.real_g + cost", trial, i, node.RealG)
			}
		}

		goalState, realCost := search.Replay(task, task, task.InitialState(), e.Plan())
		if goalState != search.StateID(length) {
			t.Fatalf("trial %d: replay reached %d, want %d", trial, goalState, length)
		}
		if realCost != e.Store().Get(search.StateID(length)).RealG {
			t.Fatalf("trial %d: replay real cost = %d, want %d", trial, realCost, e.Store().Get(search.StateID(length)).RealG)
		}
	}
}
