package main

import (
	"fmt"
	"math"

	"github.com/jcorbin/goeacal/internal/mem"
)

// Tape is a pointer-addressed run of numeric cells. Writes wrap into the
// tape's [Min, Max] bounds; reads past Max fail, while reads below Min are
// not checked. Cells never written read as Default.
//
// Pointer is kept as written by setptr; only finite pointers address a cell.
type Tape struct {
	Size    float64
	Min     float64
	Max     float64
	Default float64

	Pointer float64

	cells mem.Cells
}

// newTape creates a tape from up to four bounds, in the order
// size, min, max, default; missing bounds leave the tape unbounded with a
// default of 0.
func newTape(pageSize int, bounds ...float64) *Tape {
	tp := &Tape{
		Size: math.Inf(1),
		Min:  math.Inf(-1),
		Max:  math.Inf(1),
	}
	for i, field := range []*float64{&tp.Size, &tp.Min, &tp.Max, &tp.Default} {
		if i < len(bounds) && !math.IsNaN(bounds[i]) {
			*field = bounds[i]
		}
	}
	tp.cells.PageSize = pageSize
	tp.cells.Fill = tp.Default
	if !math.IsInf(tp.Max, 1) {
		tp.cells.Limited = true
		tp.cells.Limit = floorInt(tp.Max)
	}
	return tp
}

func floorInt(f float64) int {
	const (
		maxInt = int(^uint(0) >> 1)
		minInt = -maxInt - 1
	)
	switch f = math.Floor(f); {
	case f >= float64(maxInt):
		return maxInt
	case f <= float64(minInt):
		return minInt
	}
	return int(f)
}

// BoundsError indicates a tape read with its pointer past Max.
type BoundsError struct{ Pointer float64 }

func (be BoundsError) Error() string {
	return fmt.Sprintf("%v is out of bounds", formatNumber(be.Pointer))
}

// addr returns the cell address under the pointer; ok is false when the
// pointer is NaN or infinite.
func (tp *Tape) addr() (addr int, ok bool) {
	if math.IsNaN(tp.Pointer) || math.IsInf(tp.Pointer, 0) {
		return 0, false
	}
	return floorInt(tp.Pointer), true
}

// Get reads the cell under the pointer, writing Default into it first if it
// has never been written. Returns a BoundsError if the pointer is past Max.
// A non-finite pointer within bounds reads Default.
func (tp *Tape) Get() (float64, error) {
	if tp.Pointer > tp.Max {
		return 0, BoundsError{tp.Pointer}
	}
	addr, ok := tp.addr()
	if !ok {
		return tp.Default, nil
	}
	val, err := tp.cells.Load(addr)
	if err != nil {
		return 0, err
	}
	if !tp.cells.Has(addr) {
		tp.cells.Stor(addr, tp.Default)
	}
	return val, nil
}

// Set wraps val into bounds and writes it under the pointer, returning the
// stored value. Nothing is stored under a non-finite pointer.
func (tp *Tape) Set(val float64) float64 {
	val = tp.wrap(val)
	if addr, ok := tp.addr(); ok {
		tp.cells.Stor(addr, val)
	}
	return val
}

// wrap brings val into [Min, Max] modulo (Max - Min + 1). With only an upper
// bound, val steps down by (Max + 1); with only a lower bound, it saturates.
func (tp *Tape) wrap(val float64) float64 {
	lo, hi := tp.Min, tp.Max
	if math.IsNaN(val) || (lo <= val && val <= hi) {
		return val
	}

	loInf, hiInf := math.IsInf(lo, 0), math.IsInf(hi, 0)
	switch {
	case !loInf && !hiInf:
		span := hi - lo + 1
		if span <= 0 {
			return lo
		}
		m := math.Mod(val-lo, span)
		if m < 0 {
			m += span
		}
		return lo + m

	case loInf && !hiInf && val > hi:
		if step := hi + 1; step > 0 {
			return val - math.Ceil((val-hi)/step)*step
		}
		return hi

	case val > hi:
		return hi
	default:
		return lo
	}
}

// Cells calls each with every cell in an allocated page, in address order.
func (tp *Tape) Cells(each func(addr int, val float64)) { tp.cells.Range(each) }
