package meshgen

import "testing"

func poolIDs(p *pool[Vertex]) []uint64 {
	var ids []uint64
	for _, v := range p.values() {
		ids = append(ids, v.id)
	}
	return ids
}

func equalIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPoolKeepsInsertionOrder(t *testing.T) {
	p := newPool[Vertex]()
	for id := uint64(1); id <= 5; id++ {
		p.add(id, &Vertex{id: id})
	}

	if !p.remove(2) {
		t.Fatal("remove(2) = false")
	}
	if p.remove(2) {
		t.Error("second remove(2) = true")
	}
	if got, want := poolIDs(p), []uint64{1, 3, 4, 5}; !equalIDs(got, want) {
		t.Errorf("values() = %v, want %v", got, want)
	}

	// Enough holes to force compaction.
	p.remove(1)
	p.remove(3)
	if got, want := poolIDs(p), []uint64{4, 5}; !equalIDs(got, want) {
		t.Errorf("values() after compaction = %v, want %v", got, want)
	}
	if len(p.slots) != 2 {
		t.Errorf("len(slots) = %d, want 2 after compaction", len(p.slots))
	}
	if v, ok := p.get(5); !ok || v.id != 5 {
		t.Errorf("get(5) = %v, %v after compaction", v, ok)
	}

	p.add(6, &Vertex{id: 6})
	if got, want := poolIDs(p), []uint64{4, 5, 6}; !equalIDs(got, want) {
		t.Errorf("values() = %v, want %v", got, want)
	}
	if p.len() != 3 {
		t.Errorf("len() = %d, want 3", p.len())
	}

	p.reset()
	if p.len() != 0 || len(p.values()) != 0 || p.has(4) {
		t.Error("reset() left entries behind")
	}
}
