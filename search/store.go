package search

// Store owns every NodeInfo ever created during a search, keyed by
// StateID. It corresponds to PerStateInformation<TreeSearchNodeInfo> in
// the original planner: entries are created lazily on first access and
// are never removed, so a *NodeInfo handed out by Get remains valid
// (and keeps observing further mutations) for the lifetime of the
// Store.
//
// Store is exclusively owned by one Engine; nothing here is safe for
// concurrent use from multiple goroutines, matching the single-threaded
// resource model of spec §5.
type Store struct {
	infos map[StateID]*NodeInfo
}

// NewStore returns an empty node-info store.
func NewStore() *Store {
	return &Store{infos: make(map[StateID]*NodeInfo)}
}

// Get returns the NodeInfo for state, creating a fresh NEW record on
// first access. The returned pointer has stable identity: any mutation
// through it is visible to every subsequent Get call for the same
// state.
func (s *Store) Get(state StateID) *NodeInfo {
	info, ok := s.infos[state]
	if !ok {
		info = newNodeInfo()
		s.infos[state] = info
	}
	return info
}

// Len reports how many states have a materialized NodeInfo.
func (s *Store) Len() int {
	return len(s.infos)
}
