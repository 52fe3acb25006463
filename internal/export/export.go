// Package export serializes report result sets as ordered flat rows for
// download. Row order is whatever the producing query returned; exporters
// must not reorder.
package export

// Table is a report result set flattened for encoding: a fixed header
// followed by rows in query order.
type Table struct {
	Header []string
	Rows   [][]string
}
