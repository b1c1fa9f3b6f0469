package mem

import "fmt"

// PagedCore provides functionality common to any paged memory model.
// Addresses are signed; pages are aligned to multiples of PageSize.
type PagedCore struct {
	// PageSize specifies the length for newly allocated pages.
	PageSize int

	// Limit specifies an address past which any load results in an error.
	// Only consulted when Limited is true. Stores are never limited.
	Limit   int
	Limited bool

	bases []int
	sizes []int
}

// LimitError indicates that a load addressed memory past a Limit.
type LimitError struct {
	Addr int
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("%v is out of bounds", lim.Addr)
}

func (m *PagedCore) findPage(addr int) int {
	i, j := 0, len(m.bases)
	for i < j {
		h := (i+j)/2 + 1
		if h < len(m.bases) && m.bases[h] <= addr {
			i = h
		} else {
			j = h - 1
		}
	}
	return i
}

func (m *PagedCore) pageBase(addr int) int {
	base := addr / m.PageSize * m.PageSize
	if base > addr {
		base -= m.PageSize
	}
	return base
}

func (m *PagedCore) allocPage(pageID int, addr int) (base, size int, isNew bool) {
	if pageID < len(m.bases) && m.bases[pageID] <= addr {
		return m.bases[pageID], m.sizes[pageID], false
	}

	base = m.pageBase(addr)
	end := base + m.PageSize
	if pageID > 0 {
		if prevEnd := m.bases[pageID-1] + m.sizes[pageID-1]; base < prevEnd {
			base = prevEnd
		}
	}
	if pageID < len(m.bases) {
		if nextBase := m.bases[pageID]; end > nextBase {
			end = nextBase
		}
	}
	size = end - base

	m.bases = append(m.bases, 0)
	m.sizes = append(m.sizes, 0)
	copy(m.bases[pageID+1:], m.bases[pageID:])
	copy(m.sizes[pageID+1:], m.sizes[pageID:])
	m.bases[pageID] = base
	m.sizes[pageID] = size
	return base, size, true
}

func (m *PagedCore) checkLimit(addr int, op string) error {
	if m.Limited && addr > m.Limit {
		return LimitError{addr, op}
	}
	return nil
}
