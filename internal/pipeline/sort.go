package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/newecon/cleanbrief/internal/store"
)

// Order is a user-selectable sort key for the article list.
type Order string

const (
	OrderPublishedAsc  Order = "published_date_asc"
	OrderPublishedDesc Order = "published_date_desc"
	OrderSourceAsc     Order = "source_asc"
	OrderDefault       Order = "default"
)

// Orders returns the selectable orders in display order.
func Orders() []Order {
	return []Order{OrderPublishedDesc, OrderPublishedAsc, OrderSourceAsc, OrderDefault}
}

// ParseOrder maps a raw selector value to an Order. Unknown values fall
// back to OrderDefault.
func ParseOrder(s string) Order {
	switch Order(s) {
	case OrderPublishedAsc, OrderPublishedDesc, OrderSourceAsc:
		return Order(s)
	default:
		return OrderDefault
	}
}

// Label returns the human name shown in the sort selector.
func (o Order) Label() string {
	switch o {
	case OrderPublishedAsc:
		return "Oldest first"
	case OrderPublishedDesc:
		return "Newest first"
	case OrderSourceAsc:
		return "Source A-Z"
	default:
		return "Default order"
	}
}

// SortArticles returns a new slice sorted by the given order; the input is
// never mutated. The sort is stable, so equal keys keep their fetch order.
// A missing publish date sorts as the earliest possible timestamp: first
// ascending, last descending. A missing source compares as the empty
// string. OrderDefault returns the input order unchanged.
func SortArticles(articles []store.Article, order Order) []store.Article {
	out := make([]store.Article, len(articles))
	copy(out, articles)

	switch order {
	case OrderPublishedAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return publishedAt(out[i]).Before(publishedAt(out[j]))
		})
	case OrderPublishedDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return publishedAt(out[j]).Before(publishedAt(out[i]))
		})
	case OrderSourceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return sourceKey(out[i]) < sourceKey(out[j])
		})
	}
	return out
}

func publishedAt(a store.Article) time.Time {
	if a.PublishedDate == nil {
		return time.Time{}
	}
	return *a.PublishedDate
}

func sourceKey(a store.Article) string {
	return strings.ToLower(a.Source)
}
