package pipeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/newecon/cleanbrief/internal/store"
)

func ts(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func titles(articles []store.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Title
	}
	return out
}

func TestSortPublishedAsc(t *testing.T) {
	in := []store.Article{
		{Title: "B", PublishedDate: ts("2024-01-02")},
		{Title: "C", PublishedDate: ts("2024-03-01")},
		{Title: "A", PublishedDate: ts("2024-01-01")},
	}

	got := titles(SortArticles(in, OrderPublishedAsc))
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ascending order = %v, want %v", got, want)
	}
}

func TestSortMissingDateSortsFirstAscending(t *testing.T) {
	in := []store.Article{
		{Title: "A", PublishedDate: nil},
		{Title: "B", PublishedDate: ts("2024-01-02")},
	}

	got := titles(SortArticles(in, OrderPublishedAsc))
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ascending with missing date = %v, want %v", got, want)
	}
}

func TestSortMissingDateSortsLastDescending(t *testing.T) {
	in := []store.Article{
		{Title: "A", PublishedDate: nil},
		{Title: "B", PublishedDate: ts("2024-01-02")},
		{Title: "C", PublishedDate: ts("2024-02-01")},
	}

	got := titles(SortArticles(in, OrderPublishedDesc))
	want := []string{"C", "B", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("descending with missing date = %v, want %v", got, want)
	}
}

func TestSortSourceAscMissingAsEmpty(t *testing.T) {
	in := []store.Article{
		{Title: "Z", Source: "Zeta"},
		{Title: "N", Source: ""},
		{Title: "A", Source: "Alpha"},
	}

	got := titles(SortArticles(in, OrderSourceAsc))
	want := []string{"N", "A", "Z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("source order = %v, want %v", got, want)
	}
}

func TestSortSourceAscIgnoresCase(t *testing.T) {
	in := []store.Article{
		{Title: "1", Source: "beta"},
		{Title: "2", Source: "ALPHA"},
	}

	got := titles(SortArticles(in, OrderSourceAsc))
	want := []string{"2", "1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("case-insensitive source order = %v, want %v", got, want)
	}
}

func TestSortDefaultKeepsInputOrder(t *testing.T) {
	in := []store.Article{
		{Title: "B", PublishedDate: ts("2024-01-02")},
		{Title: "A", PublishedDate: ts("2024-01-01")},
	}

	got := titles(SortArticles(in, OrderDefault))
	want := []string{"B", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("default order = %v, want %v", got, want)
	}
}

func TestSortIsStable(t *testing.T) {
	// Same publish date: fetch order must survive the sort.
	in := []store.Article{
		{Title: "first", Source: "A", PublishedDate: ts("2024-01-01")},
		{Title: "second", Source: "B", PublishedDate: ts("2024-01-01")},
		{Title: "third", Source: "C", PublishedDate: ts("2024-01-01")},
	}

	got := titles(SortArticles(in, OrderPublishedAsc))
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("stable order = %v, want %v", got, want)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := []store.Article{
		{Title: "B", PublishedDate: ts("2024-01-02")},
		{Title: "A", PublishedDate: ts("2024-01-01")},
	}
	before := titles(in)

	SortArticles(in, OrderPublishedAsc)

	if !reflect.DeepEqual(titles(in), before) {
		t.Errorf("input mutated: %v, want %v", titles(in), before)
	}
}

func TestSortInvertibility(t *testing.T) {
	in := []store.Article{
		{Title: "C", PublishedDate: ts("2024-03-01")},
		{Title: "A", PublishedDate: ts("2024-01-01")},
		{Title: "B", PublishedDate: ts("2024-02-01")},
	}

	desc := SortArticles(in, OrderPublishedDesc)
	asc := SortArticles(desc, OrderPublishedAsc)

	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(titles(asc), want) {
		t.Errorf("desc then asc = %v, want %v", titles(asc), want)
	}
}

func TestSortIsPermutation(t *testing.T) {
	in := []store.Article{
		{Title: "A", Source: "x"},
		{Title: "B", Source: "y"},
		{Title: "A", Source: "z"},
	}

	for _, order := range Orders() {
		got := SortArticles(in, order)
		if len(got) != len(in) {
			t.Fatalf("order %s: length %d, want %d", order, len(got), len(in))
		}

		counts := map[string]int{}
		for _, a := range in {
			counts[a.Title+"|"+a.Source]++
		}
		for _, a := range got {
			counts[a.Title+"|"+a.Source]--
		}
		for k, n := range counts {
			if n != 0 {
				t.Errorf("order %s: element %q count off by %d", order, k, n)
			}
		}
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		input string
		want  Order
	}{
		{"published_date_asc", OrderPublishedAsc},
		{"published_date_desc", OrderPublishedDesc},
		{"source_asc", OrderSourceAsc},
		{"default", OrderDefault},
		{"", OrderDefault},
		{"bogus", OrderDefault},
	}
	for _, tt := range tests {
		if got := ParseOrder(tt.input); got != tt.want {
			t.Errorf("ParseOrder(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
