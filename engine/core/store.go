package core

// store is a sparse set for one component type: dense slices iterate in a
// stable order, and the sparse slice maps entity slot to dense position.
// Removal swaps the last element into the hole, so removing one entity may
// reorder others.
type store struct {
	dense  []Component
	owners []EntityID
	sparse []int32 // entity slot -> dense index, -1 when absent
}

func newStore() *store {
	return &store{
		dense:  make([]Component, 0, 64),
		owners: make([]EntityID, 0, 64),
	}
}

func (s *store) set(id EntityID, c Component) {
	idx := id.Index()
	for int(idx) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if pos := s.sparse[idx]; pos >= 0 {
		s.dense[pos] = c
		s.owners[pos] = id
		return
	}
	s.sparse[idx] = int32(len(s.dense))
	s.dense = append(s.dense, c)
	s.owners = append(s.owners, id)
}

func (s *store) get(idx uint32) Component {
	if int(idx) >= len(s.sparse) {
		return nil
	}
	pos := s.sparse[idx]
	if pos < 0 {
		return nil
	}
	return s.dense[pos]
}

func (s *store) remove(idx uint32) {
	if int(idx) >= len(s.sparse) {
		return
	}
	pos := s.sparse[idx]
	if pos < 0 {
		return
	}
	last := int32(len(s.dense) - 1)
	if pos != last {
		moved := s.owners[last]
		s.dense[pos] = s.dense[last]
		s.owners[pos] = moved
		s.sparse[moved.Index()] = pos
	}
	s.dense[last] = nil
	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	s.sparse[idx] = -1
}

func (s *store) len() int { return len(s.dense) }
