package presenter

// DefaultItemsPerPage is the page size used when none is configured.
const DefaultItemsPerPage = 5

// Offset returns the index of the first item on a 1-based page.
//
//   - Page 1, perPage 5 -> 0
//   - Page 3, perPage 5 -> 10
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// TotalPages returns ceil(total / perPage). An empty collection has zero
// pages, so the indicator reads "0 de 0".
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// hasNextPage reports whether items exist beyond page, that is
// page*perPage < total, without computing the product.
func hasNextPage(page, perPage, total int) bool {
	return page < TotalPages(total, perPage)
}

// pageBounds returns the [start, end) window of page within total items,
// clipped to the collection. Pages outside the collection yield start == end.
// The page is checked against the page count before any multiplication, so
// huge page numbers cannot overflow into a valid window.
func pageBounds(page, perPage, total int) (int, int) {
	if page < 1 || page > TotalPages(total, perPage) {
		return total, total
	}
	start := Offset(page, perPage)
	end := start + perPage
	if end > total {
		end = total
	}
	return start, end
}
