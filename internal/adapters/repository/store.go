// Package repository holds the shared, read-only Olympic event table.
package repository

import "github.com/okian/podium/internal/domain/model"

// Store provides read access to the event table.
// Implementations are immutable after construction and safe for concurrent readers.
type Store interface {
	// Countries returns every NOC present in the event table, sorted.
	Countries() []string
	// Rows returns the rows of one country in source order. Callers must not modify them.
	Rows(noc string) []model.Record
	// Has reports whether noc has at least one row.
	Has(noc string) bool
	// Count returns the total number of rows.
	Count() int
	// Region returns the region entry for noc.
	// Returns ErrNotFound if the region table has no such code.
	Region(noc string) (model.Region, error)
	// Regions returns the region table sorted by code.
	Regions() []model.Region
}
