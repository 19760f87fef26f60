// Package table turns a fetched record set into the tabular list model the
// console renders: schema-ordered columns, client-side sort, page windowing
// and an explicit empty state.
package table

import (
	"encoding/json"
	"fmt"
	"sort"

	"fleet_console/internal/schema"
)

// Direction of a column sort.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// DefaultPageSize is used when the caller does not specify one.
const DefaultPageSize = 10

// pageWindow is the maximum number of page buttons shown at once.
const pageWindow = 5

// Sort is the current sort state. A zero Sort means server order.
type Sort struct {
	Key       string    `json:"key,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// Toggle returns the sort state after a click on key's header: a new column
// starts ascending, re-clicking the current column flips the direction.
func (s Sort) Toggle(key string) Sort {
	if s.Key == key && s.Direction == Ascending {
		return Sort{Key: key, Direction: Descending}
	}
	return Sort{Key: key, Direction: Ascending}
}

// Row is one record flattened to its JSON form.
type Row = map[string]any

// Column heads one table column; exactly one per schema field, in order.
type Column struct {
	Key      string           `json:"key"`
	Label    string           `json:"label"`
	Type     schema.FieldType `json:"type"`
	Sortable bool             `json:"sortable"`
}

// Pagination describes the page controls for the current view.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalRows  int   `json:"total_rows"`
	TotalPages int   `json:"total_pages"`
	Window     []int `json:"window"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// Table is the rendered list model.
type Table struct {
	Columns      []Column   `json:"columns"`
	Rows         []Row      `json:"rows"`
	Sort         Sort       `json:"sort"`
	Pagination   Pagination `json:"pagination"`
	EmptyMessage string     `json:"empty_message,omitempty"`
}

// Build assembles the table for one page of rows. The full row set is sorted
// first, then sliced; out-of-range pages clamp rather than fail.
func Build(entity schema.Entity, rows []Row, s Sort, page, pageSize int) Table {
	columns := make([]Column, len(entity.Fields))
	for i, f := range entity.Fields {
		columns[i] = Column{Key: f.Key, Label: f.Label, Type: f.Type, Sortable: f.Sortable}
	}

	sorted := SortRows(rows, s)
	p := Paginate(len(sorted), page, pageSize)

	start := (p.Page - 1) * p.PageSize
	end := start + p.PageSize
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	t := Table{
		Columns:    columns,
		Rows:       sorted[start:end],
		Sort:       s,
		Pagination: p,
	}
	if len(rows) == 0 {
		t.EmptyMessage = "No data available"
	}
	return t
}

// SortRows returns a sorted copy of rows. The sort is stable; values compare
// by their natural order (numbers numerically, everything else as text) and
// missing values sort lowest.
func SortRows(rows []Row, s Sort) []Row {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	if s.Key == "" {
		return sorted
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i][s.Key], sorted[j][s.Key]
		if s.Direction == Descending {
			return less(b, a)
		}
		return less(a, b)
	})
	return sorted
}

func less(a, b any) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	af, aNum := asNumber(a)
	bf, bNum := asNumber(b)
	if aNum && bNum {
		return af < bf
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Paginate computes the page controls for total rows. The requested page is
// clamped into range, so navigating past either end is a no-op.
func Paginate(total, page, pageSize int) Pagination {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  total,
		TotalPages: totalPages,
		Window:     window(page, totalPages),
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// window picks at most five page numbers centered on the current page,
// clamped at both ends.
func window(page, totalPages int) []int {
	count := pageWindow
	if totalPages < count {
		count = totalPages
	}
	var first int
	switch {
	case totalPages <= pageWindow:
		first = 1
	case page <= 3:
		first = 1
	case page >= totalPages-2:
		first = totalPages - pageWindow + 1
	default:
		first = page - 2
	}
	pages := make([]int, count)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}

// RowsFrom flattens records to their JSON row form so the table and editor
// see the same keys the schema declares.
func RowsFrom[T any](records []T) ([]Row, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(records))
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// RowFrom flattens a single record.
func RowFrom(record any) (Row, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var row Row
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return row, nil
}
