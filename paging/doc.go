// Package paging provides offset-based pagination for remote lists.
//
// A Window tracks the current page of a list whose page size is fixed when
// the window is created:
//
//	w := paging.NewWindow(10)
//	w.SetTotal(25)
//	w.TotalPages() // 3
//	w.GoToPage(3)
//	w.Offset()     // 20
//	w.Next()       // false, already on the last page
//
// The Params of the current page are what the list endpoint receives; the
// endpoint answers with a Result holding the page items and the total.
package paging
