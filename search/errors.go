package search

import "fmt"

// ContractViolation is the panic value raised whenever an internal
// invariant is broken — an impossible status transition, an orphaned
// child pointer, re-parenting a node to itself. Per spec §7 these are
// programming-contract violations, not runtime conditions: they signal
// a bug in the engine or in a collaborator, never a normal outcome of
// search.
type ContractViolation struct {
	Op      string
	State   StateID
	Reason  string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("search: contract violation in %s for state %d: %s", e.Op, e.State, e.Reason)
}

// fail logs the violation at error level and panics with it. Every
// caller treats this as non-recoverable within a search run; tests may
// recover() it to assert a precondition was enforced.
func fail(op string, state StateID, reason string) {
	violation := &ContractViolation{Op: op, State: state, Reason: reason}
	log.Error().Str("op", op).Int("state", int(state)).Msg(reason)
	panic(violation)
}
