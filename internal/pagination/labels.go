// Package pagination computes page windows and the page numbers a
// pagination control shows.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultPageSize is the number of properties shown on one listing page
const DefaultPageSize = 6

// DefaultMaxLabels is the number of page numbers a pagination control shows
const DefaultMaxLabels = 5

// Labels returns the page numbers to show in a pagination control.
// The first and last pages are always shown and currentPage is centered
// among the remaining labels when possible.
//
// Out-of-range currentPage values are clamped to [1, totalPages]. The result
// is strictly ascending and never longer than maxLabels.
//
// Example: Labels(100, 50, 5) returns [1 49 50 51 100].
func Labels(totalPages, currentPage, maxLabels int) []int {
	if totalPages <= 0 || maxLabels <= 0 {
		return []int{}
	}

	if totalPages <= maxLabels {
		return pageRange(1, totalPages)
	}

	currentPage = clamp(currentPage, 1, totalPages)

	// No room for both anchors
	if maxLabels == 1 {
		return []int{currentPage}
	}

	// Slots left on each side of currentPage once page 1, totalPages and
	// currentPage itself are placed
	halfRange := floorDiv(maxLabels-3, 2)

	pages := make([]int, 0, maxLabels)
	pages = append(pages, 1)

	switch {
	case currentPage <= halfRange+2:
		pages = append(pages, pageRange(2, maxLabels-1)...)
	case currentPage >= totalPages-halfRange-1:
		pages = append(pages, pageRange(totalPages-maxLabels+2, totalPages-1)...)
	default:
		pages = append(pages, pageRange(currentPage-halfRange, currentPage+halfRange)...)
	}

	return append(pages, totalPages)
}

// TotalPages returns how many pages of pageSize items are needed for count items
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// FormatLabels renders a label sequence for a terminal: gaps between
// non-adjacent pages become an ellipsis and the current page is bracketed.
func FormatLabels(labels []int, currentPage int) string {
	var b strings.Builder
	for i, page := range labels {
		if i > 0 {
			b.WriteByte(' ')
			if page-labels[i-1] > 1 {
				b.WriteString("… ")
			}
		}
		if page == currentPage {
			b.WriteString("[" + strconv.Itoa(page) + "]")
		} else {
			b.WriteString(strconv.Itoa(page))
		}
	}
	return b.String()
}

// pageRange returns from..to inclusive, or nothing when to < from
func pageRange(from, to int) []int {
	if to < from {
		return nil
	}
	pages := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		pages = append(pages, i)
	}
	return pages
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
