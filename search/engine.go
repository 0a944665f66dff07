package search

import (
	"math/rand"

	"github.com/sw965/omw"
)

// Config collects the enumerated options of spec §6. There is no CLI
// surface — the host plugin mechanism owns argument parsing — so this
// is a plain struct filled in by functional options, matching the
// teacher's literal-struct convention (Runner{Simulation, FnCaller, C,
// Rand}) rather than a flags/viper-driven config.
type Config struct {
	Epsilon           float64
	ReopenClosedNodes bool
	Bound             int
	Rand              *rand.Rand
}

// Option configures a Config.
type Option func(*Config)

// WithEpsilon sets the exploration probability. Default 0.001.
func WithEpsilon(epsilon float64) Option {
	return func(c *Config) { c.Epsilon = epsilon }
}

// WithReopenClosedNodes enables re-parenting of CLOSED nodes onto a
// cheaper path (spec §4.5(d)). Default false.
func WithReopenClosedNodes(reopen bool) Option {
	return func(c *Config) { c.ReopenClosedNodes = reopen }
}

// WithBound sets the hard real-cost ceiling. Default Infinity.
func WithBound(bound int) Option {
	return func(c *Config) { c.Bound = bound }
}

// WithRand installs the single seedable RNG threaded through selection.
// Per spec §9's Design Notes, the engine never mixes a second,
// unseeded RNG source in alongside it.
func WithRand(r *rand.Rand) Option {
	return func(c *Config) { c.Rand = r }
}

func defaultConfig() Config {
	return Config{
		Epsilon:           0.001,
		ReopenClosedNodes: false,
		Bound:             Infinity,
		Rand:              omw.NewMt19937(),
	}
}

// Engine is the driver step of spec §4.7: it owns the tree (a Store),
// the collaborators that generate and evaluate states, and the
// configuration of spec §6. Engine.Step is the only entry point the
// outer driver loop calls repeatedly until it returns a non-InProgress
// Outcome.
type Engine struct {
	Config

	store     *Store
	registry  StateRegistry
	gen       SuccessorGenerator
	goal      GoalTest
	costs     OperatorCosts
	heuristic Heuristic
	stats     StatsSink

	selector *Selector
	expander *Expander

	root StateID
	plan Plan
}

// NewEngine wires the collaborators of spec §6 into a fresh Engine.
// stats may be nil, in which case counters are discarded.
func NewEngine(
	registry StateRegistry,
	gen SuccessorGenerator,
	goal GoalTest,
	costs OperatorCosts,
	heuristic Heuristic,
	stats StatsSink,
	opts ...Option,
) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if stats == nil {
		stats = NopStats{}
	}

	store := NewStore()
	e := &Engine{
		Config:    cfg,
		store:     store,
		registry:  registry,
		gen:       gen,
		goal:      goal,
		costs:     costs,
		heuristic: heuristic,
		stats:     stats,
	}
	e.selector = &Selector{Store: store, Rand: cfg.Rand, Epsilon: cfg.Epsilon, Stats: stats}
	e.expander = &Expander{
		Store:             store,
		Registry:          registry,
		Successors:        gen,
		Goal:              goal,
		Costs:             costs,
		Heuristic:         heuristic,
		Stats:             stats,
		Bound:             cfg.Bound,
		ReopenClosedNodes: cfg.ReopenClosedNodes,
	}
	return e
}

// Initialize opens the root (spec §4.7's final paragraph): the root
// transitions NEW -> OPEN with its heuristic value, and the heuristic's
// one-shot NotifyInitialState hook fires exactly once.
func (e *Engine) Initialize() {
	e.root = e.registry.InitialState()
	e.heuristic.NotifyInitialState(e.root)
	root := NewNode(e.root, e.store.Get(e.root))
	h := e.heuristic.Evaluate(e.root, 0)
	e.stats.IncEvaluated()
	root.OpenInitial(h)
}

// Step runs one iteration of spec §4.7: select -> expand -> propagate.
// The trivial case of an initial state that already satisfies the goal
// is checked first, since the expander only ever tests newly discovered
// successors against the goal predicate (spec §4.5(e)), never the leaf
// it was asked to expand.
func (e *Engine) Step() Outcome {
	if e.goal.IsGoal(e.root) {
		e.plan = nil
		return Solved
	}

	root := NewNode(e.root, e.store.Get(e.root))
	if root.IsDeadEnd() {
		return Failed
	}

	leaf := e.selector.SelectLeaf(e.root)
	result := e.expander.Expand(leaf)
	if result.Outcome == Solved {
		e.plan = result.Plan
		return Solved
	}

	BackPropagate(e.store, e.stats, leaf)
	return InProgress
}

// Plan returns the operator sequence from root to goal. Valid only
// after Step has returned Solved.
func (e *Engine) Plan() Plan {
	return e.plan
}

// Store exposes the underlying NodeInfo store, primarily so tests and
// the elimination variant can inspect tree shape directly.
func (e *Engine) Store() *Store {
	return e.store
}

// Root returns the root state id.
func (e *Engine) Root() StateID {
	return e.root
}
