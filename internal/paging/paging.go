// Package paging maps a user-chosen page size onto the provider's fixed-size pages.
//
// A local page is always served from a single remote page. When a local page
// straddles a remote page boundary the window taken from that one remote page is
// shorter than the local page size; callers display the short page as is.
package paging

// RemotePageSize is the number of characters per provider page.
const RemotePageSize = 20

// PageSizes are the local page sizes the UI offers.
var PageSizes = []int{5, 10, 15, 20}

// DefaultPageSize is the initial local page size.
const DefaultPageSize = 10

// ValidPageSize reports whether size is one of PageSizes.
func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// NextPageSize returns the page size following size in PageSizes, wrapping around.
func NextPageSize(size int) int {
	for i, s := range PageSizes {
		if s == size {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return PageSizes[0]
}

// RemotePage returns the 1-based remote page holding the first item of localPage.
func RemotePage(localPage, localPageSize, remotePageSize int) int {
	return ((localPage-1)*localPageSize)/remotePageSize + 1
}

// LocalSlice returns the [start, end) window of the remote page returned by
// RemotePage that corresponds to localPage. end may exceed the remote page length.
func LocalSlice(localPage, localPageSize, remotePageSize int) (start, end int) {
	start = ((localPage - 1) * localPageSize) % remotePageSize
	return start, start + localPageSize
}

// TotalPages returns the number of local pages for remotePages provider pages.
// It is 1 when no remote page information is available.
func TotalPages(remotePages, remotePageSize, localPageSize int) int {
	if remotePages <= 0 || localPageSize <= 0 {
		return 1
	}
	items := remotePages * remotePageSize
	return (items + localPageSize - 1) / localPageSize
}

// Window returns items[start:end] clamped to the bounds of items.
func Window[T any](items []T, start, end int) []T {
	if start < 0 {
		start = 0
	}
	if end > len(items) {
		end = len(items)
	}
	if start >= end {
		return nil
	}
	return items[start:end]
}

// HasPrev reports whether a previous page exists.
func HasPrev(page int) bool {
	return page > 1
}

// HasNext reports whether a page after page exists.
func HasNext(page, total int) bool {
	return page < total
}
