package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	name string
	when time.Time
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func stamp(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func TestApplyPredicatesCommute(t *testing.T) {
	records := []record{
		{name: "Milk run", when: stamp("2024-01-10T09:00:00")},
		{name: "Rent", when: stamp("2024-01-11T00:00:01")},
		{name: "milkshake supplies", when: stamp("2024-01-10T23:00:00")},
		{name: "Gas", when: stamp("2024-01-09T12:00:00")},
	}

	text := TextPredicate("milk", func(r record) string { return r.name })
	from, to := day("2024-01-10"), day("2024-01-10")
	dates := DateRangePredicate(&from, &to, func(r record) time.Time { return r.when })

	ab := Apply(records, text, dates)
	ba := Apply(records, dates, text)

	assert.Equal(t, ab, ba)
	require.Len(t, ab, 2)
	assert.Equal(t, "Milk run", ab[0].name)
	assert.Equal(t, "milkshake supplies", ab[1].name)
}

func TestTextPredicate(t *testing.T) {
	tests := []struct {
		name string
		term string
		in   string
		want bool
	}{
		{name: "case insensitive", term: "MILK", in: "milkshake", want: true},
		{name: "substring", term: "hak", in: "milkshake", want: true},
		{name: "no match", term: "rent", in: "milkshake", want: false},
		{name: "empty term matches all", term: "", in: "anything", want: true},
		{name: "whitespace term matches all", term: "   ", in: "anything", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := TextPredicate(tt.term, func(r record) string { return r.name })
			assert.Equal(t, tt.want, p(record{name: tt.in}))
		})
	}
}

func TestTextPredicateMultipleFields(t *testing.T) {
	type sale struct{ id, seller string }
	p := TextPredicate[sale]("ana",
		func(s sale) string { return s.id },
		func(s sale) string { return s.seller },
	)

	assert.True(t, p(sale{id: "s-1", seller: "Ana López"}))
	assert.True(t, p(sale{id: "banana-7", seller: "Luis"}))
	assert.False(t, p(sale{id: "s-2", seller: "Luis"}))
}

func TestDateRangePredicateSingleDayIsInclusive(t *testing.T) {
	from, to := day("2024-01-10"), day("2024-01-10")
	p := DateRangePredicate(&from, &to, func(r record) time.Time { return r.when })

	assert.True(t, p(record{when: stamp("2024-01-10T23:00:00")}), "late same-day record must match")
	assert.True(t, p(record{when: stamp("2024-01-10T00:00:00")}), "midnight record must match")
	assert.False(t, p(record{when: stamp("2024-01-11T00:00:01")}), "next-day record must not match")
	assert.False(t, p(record{when: stamp("2024-01-09T23:59:59")}), "previous-day record must not match")
}

func TestDateRangePredicateOpenBounds(t *testing.T) {
	from := day("2024-01-10")
	onlyFrom := DateRangePredicate(&from, nil, func(r record) time.Time { return r.when })
	assert.True(t, onlyFrom(record{when: stamp("2025-06-01T10:00:00")}))
	assert.False(t, onlyFrom(record{when: stamp("2024-01-09T10:00:00")}))

	to := day("2024-01-10")
	onlyTo := DateRangePredicate(nil, &to, func(r record) time.Time { return r.when })
	assert.True(t, onlyTo(record{when: stamp("2020-01-01T10:00:00")}))
	assert.False(t, onlyTo(record{when: stamp("2024-01-11T10:00:00")}))
}

func TestPaginate(t *testing.T) {
	data := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name string
		page int
		size int
		want []int
	}{
		{name: "first page", page: 1, size: 3, want: []int{1, 2, 3}},
		{name: "middle page", page: 2, size: 3, want: []int{4, 5, 6}},
		{name: "short last page", page: 3, size: 3, want: []int{7}},
		{name: "beyond range", page: 4, size: 3, want: []int{}},
		{name: "zero page", page: 0, size: 3, want: []int{}},
		{name: "zero size", page: 1, size: 0, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(data, tt.page, tt.size))
		})
	}
}

func TestPaginatePartitionsSequence(t *testing.T) {
	data := make([]int, 23)
	for i := range data {
		data[i] = i
	}

	const size = 5
	var rebuilt []int
	for page := 1; ; page++ {
		chunk := Paginate(data, page, size)
		if len(chunk) == 0 {
			break
		}
		rebuilt = append(rebuilt, chunk...)
	}

	assert.Equal(t, data, rebuilt, "concatenated pages must reproduce the sequence exactly once per element")
}

func TestSortByIsStable(t *testing.T) {
	records := []record{
		{name: "b", when: stamp("2024-01-01T00:00:00")},
		{name: "a1", when: stamp("2024-01-02T00:00:00")},
		{name: "a2", when: stamp("2024-01-03T00:00:00")},
	}

	cmp := StringKey(func(r record) (string, bool) { return string(r.name[0]), true })
	sorted := SortBy(records, cmp, Ascending)

	require.Len(t, sorted, 3)
	assert.Equal(t, "a1", sorted[0].name, "equal keys keep input order")
	assert.Equal(t, "a2", sorted[1].name)
	assert.Equal(t, "b", sorted[2].name)
}

func TestSortByMissingValues(t *testing.T) {
	type row struct {
		seller *string
		id     string
	}
	ana, luis := "Ana", "Luis"
	rows := []row{
		{id: "1", seller: &luis},
		{id: "2", seller: nil},
		{id: "3", seller: &ana},
	}

	cmp := StringKey(func(r row) (string, bool) {
		if r.seller == nil {
			return "", false
		}
		return *r.seller, true
	})

	ids := func(rows []row) []string {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = r.id
		}
		return out
	}

	asc := SortBy(rows, cmp, Ascending)
	assert.Equal(t, []string{"3", "1", "2"}, ids(asc), "missing values sort last ascending")

	desc := SortBy(rows, cmp, Descending)
	assert.Equal(t, []string{"2", "1", "3"}, ids(desc), "missing values sort first descending")
}

func TestSortByNilComparatorKeepsOrder(t *testing.T) {
	records := []record{{name: "z"}, {name: "a"}}
	sorted := SortBy(records, nil, Ascending)
	assert.Equal(t, records, sorted)
}

func TestSortByDoesNotMutateInput(t *testing.T) {
	records := []record{{name: "z"}, {name: "a"}}
	cmp := StringKey(func(r record) (string, bool) { return r.name, true })
	_ = SortBy(records, cmp, Ascending)
	assert.Equal(t, "z", records[0].name)
}
