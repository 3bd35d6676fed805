// Package view turns query state and page results into render-ready models. Nothing here
// does I/O, so every function can be tested on plain values.
package view

import "fmt"

// windowRadius is how many pages are shown on each side of the current one.
const windowRadius = 2

// ItemKind tells a page button from a gap marker.
type ItemKind int

const (
	KindPage ItemKind = iota
	KindEllipsis
)

// PageItem is one entry of the pagination control.
type PageItem struct {
	Kind    ItemKind
	Number  int
	Current bool
}

// NavButton is a Previous/Next control; Page is its target when enabled.
type NavButton struct {
	Page    int
	Enabled bool
}

// Pagination is the pagination region. When Visible is false nothing else matters.
type Pagination struct {
	Visible    bool
	Page       int
	TotalPages int
	Prev       NavButton
	Next       NavButton
	Items      []PageItem
	Start      int
	End        int
	Total      int
}

// Summary renders the "Showing X to Y of N" line.
func (p Pagination) Summary() string {
	noun := "usager"
	if p.Total > 1 {
		noun = "usagers"
	}
	return fmt.Sprintf("Showing %d to %d of %d %s", p.Start, p.End, p.Total, noun)
}

// Numbers lists the page buttons only, in display order.
func (p Pagination) Numbers() []int {
	out := make([]int, 0, len(p.Items))
	for _, it := range p.Items {
		if it.Kind == KindPage {
			out = append(out, it.Number)
		}
	}
	return out
}

// BuildPagination computes the sliding window [page-2, page+2] clipped to
// [1, totalPages], with first/last anchors and ellipses where a gap of more than one
// page exists.
func BuildPagination(page, totalPages, limit, total int) Pagination {
	if totalPages <= 1 {
		return Pagination{Page: page, TotalPages: totalPages, Total: total}
	}

	p := Pagination{
		Visible:    true,
		Page:       page,
		TotalPages: totalPages,
		Prev:       NavButton{Page: page - 1, Enabled: page > 1},
		Next:       NavButton{Page: page + 1, Enabled: page < totalPages},
		Start:      (page-1)*limit + 1,
		End:        min(page*limit, total),
		Total:      total,
	}

	start := max(1, page-windowRadius)
	end := min(totalPages, page+windowRadius)

	if start > 1 {
		p.Items = append(p.Items, pageItem(1, page))
		if start > 2 {
			p.Items = append(p.Items, PageItem{Kind: KindEllipsis})
		}
	}
	for i := start; i <= end; i++ {
		p.Items = append(p.Items, pageItem(i, page))
	}
	if end < totalPages {
		if end < totalPages-1 {
			p.Items = append(p.Items, PageItem{Kind: KindEllipsis})
		}
		p.Items = append(p.Items, pageItem(totalPages, page))
	}
	return p
}

func pageItem(n, current int) PageItem {
	return PageItem{Kind: KindPage, Number: n, Current: n == current}
}
