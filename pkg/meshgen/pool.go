package meshgen

// pool is an insertion-ordered arena keyed by entity identity. Removal
// leaves a hole in the slot list that is squeezed out once holes make up
// half of it, so iteration order stays the insertion order of live entries.
type pool[T any] struct {
	slots []*T
	ids   []uint64
	index map[uint64]int
	holes int
}

func newPool[T any]() *pool[T] {
	return &pool[T]{index: make(map[uint64]int)}
}

func (p *pool[T]) add(id uint64, v *T) {
	p.index[id] = len(p.slots)
	p.slots = append(p.slots, v)
	p.ids = append(p.ids, id)
}

func (p *pool[T]) get(id uint64) (*T, bool) {
	i, ok := p.index[id]
	if !ok {
		return nil, false
	}
	return p.slots[i], true
}

func (p *pool[T]) has(id uint64) bool {
	_, ok := p.index[id]
	return ok
}

func (p *pool[T]) remove(id uint64) bool {
	i, ok := p.index[id]
	if !ok {
		return false
	}
	delete(p.index, id)
	p.slots[i] = nil
	p.holes++
	if p.holes*2 >= len(p.slots) {
		p.compact()
	}
	return true
}

func (p *pool[T]) compact() {
	n := 0
	for i, v := range p.slots {
		if v == nil {
			continue
		}
		p.slots[n] = v
		p.ids[n] = p.ids[i]
		p.index[p.ids[n]] = n
		n++
	}
	clear(p.slots[n:])
	p.slots = p.slots[:n]
	p.ids = p.ids[:n]
	p.holes = 0
}

func (p *pool[T]) len() int {
	return len(p.index)
}

// values returns the live entries in insertion order.
func (p *pool[T]) values() []*T {
	out := make([]*T, 0, p.len())
	for _, v := range p.slots {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func (p *pool[T]) reset() {
	p.slots = nil
	p.ids = nil
	p.index = make(map[uint64]int)
	p.holes = 0
}
