package repository

import (
	"context"
	"fmt"
	"sync"

	"trivia-api/internal/domain"
)

// MemoryStore keeps categories and questions in process memory. Ids are
// assigned from a monotonic counter so insertion order is id order.
type MemoryStore struct {
	txMu           sync.Mutex
	mu             sync.RWMutex
	categories     []*domain.Category
	questions      map[int64]*domain.Question
	order          []int64 // question ids, ascending
	nextQuestionID int64
	nextCategoryID int64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories:     make([]*domain.Category, 0),
		questions:      make(map[int64]*domain.Question),
		order:          make([]int64, 0),
		nextQuestionID: 1,
		nextCategoryID: 1,
	}
}

var (
	_ domain.QuestionRepository = (*MemoryStore)(nil)
	_ domain.CategoryRepository = (*MemoryStore)(nil)
	_ domain.CategoryWriter     = (*MemoryStore)(nil)
	_ domain.TransactionManager = (*MemoryStore)(nil)
)

type memorySnapshot struct {
	categories     []*domain.Category
	questions      map[int64]*domain.Question
	order          []int64
	nextQuestionID int64
	nextCategoryID int64
}

// WithTransaction runs fn and puts the previous contents back when fn fails or
// panics. Transactions run one at a time; writes made outside a transaction
// while one is open are lost on rollback.
func (s *MemoryStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
	}()

	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// snapshot copies the containers only; stored entities are never mutated in place.
func (s *MemoryStore) snapshot() memorySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := make(map[int64]*domain.Question, len(s.questions))
	for id, q := range s.questions {
		questions[id] = q
	}
	return memorySnapshot{
		categories:     append([]*domain.Category(nil), s.categories...),
		questions:      questions,
		order:          append([]int64(nil), s.order...),
		nextQuestionID: s.nextQuestionID,
		nextCategoryID: s.nextCategoryID,
	}
}

func (s *MemoryStore) restore(snap memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = snap.categories
	s.questions = snap.questions
	s.order = snap.order
	s.nextQuestionID = snap.nextQuestionID
	s.nextCategoryID = snap.nextCategoryID
}

// SaveCategory adds a category. A preset id is kept; otherwise the next free id is assigned.
func (s *MemoryStore) SaveCategory(_ context.Context, category *domain.Category) error {
	if category == nil {
		return fmt.Errorf("cannot save nil category")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.ID == 0 {
		category.ID = s.nextCategoryID
	}
	for _, c := range s.categories {
		if c.ID == category.ID {
			return fmt.Errorf("category %d already exists", category.ID)
		}
	}
	if category.ID >= s.nextCategoryID {
		s.nextCategoryID = category.ID + 1
	}

	stored := *category
	idx := len(s.categories)
	for i, c := range s.categories {
		if c.ID > stored.ID {
			idx = i
			break
		}
	}
	s.categories = append(s.categories, nil)
	copy(s.categories[idx+1:], s.categories[idx:])
	s.categories[idx] = &stored
	return nil
}

func (s *MemoryStore) GetAllCategories(_ context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Category, len(s.categories))
	for i, c := range s.categories {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

func (s *MemoryStore) CreateQuestion(_ context.Context, q *domain.Question) error {
	if q == nil {
		return fmt.Errorf("cannot save nil question")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *q
	stored.ID = s.nextQuestionID
	s.nextQuestionID++

	s.questions[stored.ID] = &stored
	s.order = append(s.order, stored.ID)
	q.ID = stored.ID
	return nil
}

func (s *MemoryStore) GetQuestionByID(_ context.Context, id int64) (*domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (s *MemoryStore) DeleteQuestion(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return false, nil
	}
	delete(s.questions, id)
	for i, qid := range s.order {
		if qid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *MemoryStore) ListQuestions(_ context.Context, page domain.Page) (*domain.QuestionPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := page.Bounds(len(s.order))
	out := make([]*domain.Question, 0, end-start)
	for _, id := range s.order[start:end] {
		cp := *s.questions[id]
		out = append(out, &cp)
	}
	return &domain.QuestionPage{Questions: out, Total: len(s.order)}, nil
}

func (s *MemoryStore) ListAllQuestions(_ context.Context) ([]*domain.Question, error) {
	return s.filter(func(*domain.Question) bool { return true }), nil
}

func (s *MemoryStore) ListQuestionsByCategory(_ context.Context, categoryID int64) ([]*domain.Question, error) {
	return s.filter(func(q *domain.Question) bool { return q.CategoryID == categoryID }), nil
}

func (s *MemoryStore) SearchQuestions(_ context.Context, term string) ([]*domain.Question, error) {
	return s.filter(func(q *domain.Question) bool { return domain.MatchesSearch(q.Question, term) }), nil
}

func (s *MemoryStore) filter(keep func(*domain.Question) bool) []*domain.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Question, 0)
	for _, id := range s.order {
		q := s.questions[id]
		if !keep(q) {
			continue
		}
		cp := *q
		out = append(out, &cp)
	}
	return out
}
