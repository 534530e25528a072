// internal/app/system/paging/paging.go
package paging

import (
	"strconv"

	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the number of rows shown in paged admin lists.
// Keep this as an int because call sites cast to int64 for Mongo
// Find().SetLimit().
const PageSize = 50

// ParsePage parses the 1-based "page" query parameter. Returns 1 if the
// value is missing or invalid.
func ParsePage(s string) int {
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Skip returns the number of documents to skip for the given page.
func Skip(page int) int64 {
	if page < 1 {
		page = 1
	}
	return int64(page-1) * PageSize
}

// FindOptions returns Mongo find options limiting results to one page.
// Callers layer these over their own sort options.
func FindOptions(page int) *options.FindOptions {
	return options.Find().SetSkip(Skip(page)).SetLimit(int64(PageSize))
}

// PageCount returns the number of pages needed for total documents.
// An empty collection still has one (empty) page.
func PageCount(total int64) int {
	if total <= 0 {
		return 1
	}
	pages := int(total / PageSize)
	if total%PageSize != 0 {
		pages++
	}
	return pages
}
