// Package merge builds the per-draw index that maps every cell inside
// a merged range back to that range, per spec.md §4.4.
//
// The index keeps one row-map per column. A column's map is created the
// first time any range covers that column and is then shared by every
// later range that covers it, so ranges stacked in the same column
// never overwrite each other's entries.
package merge

import (
	"sheetraster/internal/reference"
)

// Index resolves a (col, row) cell to the merged range that contains
// it, if any.
type Index struct {
	// byColumn[col][row] = mergeId; one map per column, shared by every
	// range that covers that column.
	byColumn map[int]map[int]int
	ranges   map[int]reference.RangeNumber
	ordered  []reference.RangeNumber
}

// Build constructs a merge Index from a worksheet's raw merge
// references (spec.md's worksheet.model.merges), skipping any reference
// that fails to parse (spec.md §4.3/§7: malformed references are a
// silent skip).
func Build(rawMerges []string) *Index {
	idx := &Index{
		byColumn: make(map[int]map[int]int),
		ranges:   make(map[int]reference.RangeNumber),
	}

	nextID := 0
	for _, raw := range rawMerges {
		rng, ok := reference.ParseRange(raw)
		if !ok {
			continue
		}

		id := nextID
		nextID++
		idx.ranges[id] = rng
		idx.ordered = append(idx.ordered, rng)

		for col := rng.Start.Col; col <= rng.End.Col; col++ {
			rowMap, ok := idx.byColumn[col]
			if !ok {
				rowMap = make(map[int]int)
				idx.byColumn[col] = rowMap
			}
			for row := rng.Start.Row; row <= rng.End.Row; row++ {
				rowMap[row] = id
			}
		}
	}

	return idx
}

// RangeFor returns the merged range containing (col, row), if any.
func (idx *Index) RangeFor(col, row int) (reference.RangeNumber, bool) {
	rowMap, ok := idx.byColumn[col]
	if !ok {
		return reference.RangeNumber{}, false
	}
	id, ok := rowMap[row]
	if !ok {
		return reference.RangeNumber{}, false
	}
	return idx.ranges[id], true
}

// Ranges returns every merged range, in the order they were declared —
// used by the draw orchestrator's "merged cells first" iteration phase.
func (idx *Index) Ranges() []reference.RangeNumber {
	return idx.ordered
}
