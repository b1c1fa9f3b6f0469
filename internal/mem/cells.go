package mem

// DefaultCellsPageSize provides a default for Cells.PageSize.
const DefaultCellsPageSize = 256

// Cells implements a number-oriented paged memory over signed addresses.
// Newly allocated pages are filled with Fill, as is any value loaded from an
// unallocated address.
type Cells struct {
	PagedCore
	Fill  float64
	pages [][]float64
}

// Size returns the number of cells allocated so far.
func (m *Cells) Size() int {
	n := 0
	for _, size := range m.sizes {
		n += size
	}
	return n
}

// Has returns true if addr falls within an allocated page.
func (m *Cells) Has(addr int) bool {
	if len(m.pages) == 0 {
		return false
	}
	pageID := m.findPage(addr)
	i := addr - m.bases[pageID]
	return 0 <= i && i < len(m.pages[pageID])
}

// Load returns a single value from the given address.
// Unallocated pages are left unallocated, resulting in implicit Fill values.
// Returns an error if addr exceeds any Limit.
func (m *Cells) Load(addr int) (float64, error) {
	if err := m.checkLimit(addr, "load"); err != nil {
		return 0, err
	}

	if len(m.pages) == 0 {
		return m.Fill, nil
	}

	pageID := m.findPage(addr)
	page := m.pages[pageID]
	if i := addr - m.bases[pageID]; 0 <= i && i < len(page) {
		return page[i], nil
	}

	return m.Fill, nil
}

// LoadInto reads len(buf) values from memory starting at addr, using Fill
// for any unallocated cells.
// Returns an error if Limit would be exceeded; no partial load is done.
func (m *Cells) LoadInto(addr int, buf []float64) error {
	if len(buf) == 0 {
		return nil
	}

	end := addr + len(buf)
	if err := m.checkLimit(end-1, "load"); err != nil {
		return err
	}

	for i := range buf {
		buf[i] = m.Fill
	}

	for pageID := m.findPage(addr); addr < end && pageID < len(m.bases); pageID++ {
		base := m.bases[pageID]
		if base >= end {
			break
		}

		page := m.pages[pageID]
		if skip := addr - base; skip > 0 {
			if skip >= len(page) {
				continue
			}
			page = page[skip:]
		} else if skip < 0 {
			buf = buf[-skip:]
			addr = base
		}

		n := copy(buf, page)
		buf = buf[n:]
		addr += n
	}

	return nil
}

// Stor stores any values at addr, allocating pages if necessary.
func (m *Cells) Stor(addr int, values ...float64) {
	if len(values) == 0 {
		return
	}

	if m.PageSize <= 0 {
		m.PageSize = DefaultCellsPageSize
	}

	end := addr + len(values)
	for pageID := m.findPage(addr); addr < end; pageID++ {
		base, size, page := m.allocPage(pageID, addr)
		if skip := addr - base; skip > 0 {
			if skip >= size {
				continue
			}
			page = page[skip:]
		}
		n := copy(page, values)
		values = values[n:]
		addr += n
	}
}

func (m *Cells) allocPage(pageID int, addr int) (base, size int, page []float64) {
	base, size, isNew := m.PagedCore.allocPage(pageID, addr)
	if !isNew {
		return base, size, m.pages[pageID]
	}
	page = make([]float64, size)
	if m.Fill != 0 {
		for i := range page {
			page[i] = m.Fill
		}
	}
	m.pages = append(m.pages, nil)
	copy(m.pages[pageID+1:], m.pages[pageID:])
	m.pages[pageID] = page
	return base, size, page
}

// Range calls each with every allocated address and its value, in address
// order.
func (m *Cells) Range(each func(addr int, value float64)) {
	for pageID, page := range m.pages {
		base := m.bases[pageID]
		for i, value := range page {
			each(base+i, value)
		}
	}
}
