package domain

import (
	"fmt"
	"math"
	"math/rand"
)

// QuestionsPerPage is the fixed page size of question listings.
const QuestionsPerPage = 10

// Page addresses one fixed-size slice of the id-ordered question sequence.
type Page struct {
	Number int
	Size   int
}

// NewPage returns page number n with the default page size.
func NewPage(n int) Page {
	return Page{Number: n, Size: QuestionsPerPage}
}

// Valid reports whether the page number can address any item at all.
func (p Page) Valid() bool {
	return p.Number >= 1 && p.Size >= 1
}

// Addressable reports whether the page is valid and its last offset fits in an int.
// A page that is not addressable lies past the end of any store.
func (p Page) Addressable() bool {
	return p.Valid() && p.Number-1 <= (math.MaxInt-p.Size)/p.Size
}

// Offset is only meaningful for an addressable page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) Limit() int {
	return p.Size
}

// Bounds clamps [Offset, Offset+Size) to a sequence of length total.
// An out-of-range page yields start == end.
func (p Page) Bounds(total int) (start, end int) {
	if !p.Valid() {
		return 0, 0
	}
	if !p.Addressable() {
		return total, total
	}
	start = p.Offset()
	if start > total {
		start = total
	}
	end = start + p.Size
	if end > total {
		end = total
	}
	return start, end
}

// CategoryFilter selects the quiz candidate pool: every category, or exactly one.
type CategoryFilter struct {
	all bool
	id  int64
}

// AllCategories is the filter that matches every question.
func AllCategories() CategoryFilter {
	return CategoryFilter{all: true}
}

// InCategory is the filter that matches questions of a single category.
// Unknown ids are valid and simply match nothing.
func InCategory(id int64) CategoryFilter {
	return CategoryFilter{id: id}
}

// CategoryFilterFromID maps the wire convention (0 = all categories) onto a filter.
func CategoryFilterFromID(id int64) CategoryFilter {
	if id == 0 {
		return AllCategories()
	}
	return InCategory(id)
}

func (f CategoryFilter) IsAll() bool {
	return f.all
}

// CategoryID returns the filtered category id; ok is false for AllCategories.
func (f CategoryFilter) CategoryID() (id int64, ok bool) {
	return f.id, !f.all
}

func (f CategoryFilter) Matches(q *Question) bool {
	return q != nil && (f.all || q.CategoryID == f.id)
}

func (f CategoryFilter) String() string {
	if f.all {
		return "all"
	}
	return fmt.Sprintf("%d", f.id)
}

// IDSet is a set of question ids. Duplicates collapse and order is irrelevant.
type IDSet map[int64]struct{}

func NewIDSet(ids ...int64) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s IDSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// Picker returns an index in [0, n). n is always positive.
type Picker func(n int) int

// RandomPicker draws uniformly from the runtime-seeded generator.
func RandomPicker(n int) int {
	return rand.Intn(n)
}

// EligibleQuestions returns the questions of pool matching filter whose ids are not excluded,
// preserving pool order.
func EligibleQuestions(pool []*Question, filter CategoryFilter, excluded IDSet) []*Question {
	eligible := make([]*Question, 0, len(pool))
	for _, q := range pool {
		if !filter.Matches(q) || excluded.Contains(q.ID) {
			continue
		}
		eligible = append(eligible, q)
	}
	return eligible
}

// SelectNextQuestion picks one eligible question uniformly at random.
// It returns nil when the eligible set is empty, which signals quiz exhaustion.
func SelectNextQuestion(pool []*Question, filter CategoryFilter, excluded IDSet, pick Picker) *Question {
	eligible := EligibleQuestions(pool, filter, excluded)
	if len(eligible) == 0 {
		return nil
	}
	if pick == nil {
		pick = RandomPicker
	}
	return eligible[pick(len(eligible))]
}
