package repository

import (
	"context"
	"errors"
	"math"
	"regexp"
	"testing"

	"trivia-api/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var questionRowColumns = []string{"id", "question", "answer", "difficulty", "category_id"}

func TestQuestionDatabaseAdapter_CreateQuestion(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(insertQuestionQuery)).
		WithArgs("What is H2O?", "Water", 1, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	q := &domain.Question{Question: "What is H2O?", Answer: "Water", Difficulty: 1, CategoryID: 1}
	err := repo.CreateQuestion(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, int64(42), q.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_CreateQuestion_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	dbErr := errors.New("insert failed")
	mock.ExpectQuery(regexp.QuoteMeta(insertQuestionQuery)).WillReturnError(dbErr)

	q := &domain.Question{Question: "Q", Answer: "A", Difficulty: 1, CategoryID: 1}
	err := repo.CreateQuestion(context.Background(), q)

	assert.ErrorIs(t, err, dbErr)
	assert.Zero(t, q.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_GetQuestionByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(getQuestionByIDQuery)).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(questionRowColumns).AddRow(5, "Q5", "A5", 3, 2))

		q, err := repo.GetQuestionByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, &domain.Question{ID: 5, Question: "Q5", Answer: "A5", Difficulty: 3, CategoryID: 2}, q)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(getQuestionByIDQuery)).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(questionRowColumns))

		q, err := repo.GetQuestionByID(context.Background(), 99)
		assert.NoError(t, err)
		assert.Nil(t, q)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_DeleteQuestion(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(deleteQuestionQuery)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteQuestionQuery)).
		WithArgs(int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteQuestion(context.Background(), 5)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteQuestion(context.Background(), 6)
	assert.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_DeleteQuestion_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	dbErr := errors.New("lock timeout")
	mock.ExpectExec(regexp.QuoteMeta(deleteQuestionQuery)).WillReturnError(dbErr)

	deleted, err := repo.DeleteQuestion(context.Background(), 5)
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_ListQuestions(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	columns := append(append([]string{}, questionRowColumns...), "total_count")
	mock.ExpectQuery(regexp.QuoteMeta(listQuestionsPageQuery)).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(11, "Q11", "A11", 1, 1, 12).
			AddRow(12, "Q12", "A12", 2, 1, 12))

	page, err := repo.ListQuestions(context.Background(), domain.NewPage(2))

	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	require.Len(t, page.Questions, 2)
	assert.Equal(t, int64(11), page.Questions[0].ID)
	assert.Equal(t, int64(12), page.Questions[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_ListQuestions_PastEnd(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	columns := append(append([]string{}, questionRowColumns...), "total_count")
	mock.ExpectQuery(regexp.QuoteMeta(listQuestionsPageQuery)).
		WithArgs(10, 990).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectQuery(regexp.QuoteMeta(countQuestionsQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	page, err := repo.ListQuestions(context.Background(), domain.NewPage(100))

	require.NoError(t, err)
	assert.Empty(t, page.Questions)
	assert.Equal(t, 12, page.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_ListQuestions_InvalidPage(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(countQuestionsQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	page, err := repo.ListQuestions(context.Background(), domain.NewPage(0))

	require.NoError(t, err)
	assert.Empty(t, page.Questions)
	assert.Equal(t, 3, page.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_ListQuestions_OffsetOverflow(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(countQuestionsQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	page, err := repo.ListQuestions(context.Background(), domain.NewPage(math.MaxInt))

	require.NoError(t, err)
	assert.Empty(t, page.Questions)
	assert.Equal(t, 25, page.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_ListQuestionsByCategory(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(listQuestionsByCategoryQuery)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(questionRowColumns).
			AddRow(3, "Q3", "A3", 1, 2).
			AddRow(7, "Q7", "A7", 4, 2))

	questions, err := repo.ListQuestionsByCategory(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, questions, 2)
	for _, q := range questions {
		assert.Equal(t, int64(2), q.CategoryID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_ListAllQuestions_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	dbErr := errors.New("broken pipe")
	mock.ExpectQuery(regexp.QuoteMeta(listAllQuestionsQuery)).WillReturnError(dbErr)

	questions, err := repo.ListAllQuestions(context.Background())

	assert.Nil(t, questions)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_SearchQuestions(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(searchQuestionsQuery)).
		WithArgs("title").
		WillReturnRows(sqlmock.NewRows(questionRowColumns).
			AddRow(2, "What movie earned Tom Hanks his Title role?", "Apollo 13", 4, 5))

	questions, err := repo.SearchQuestions(context.Background(), "title")

	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, int64(2), questions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_SearchQuestions_EmptyTerm(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(listAllQuestionsQuery)).
		WillReturnRows(sqlmock.NewRows(questionRowColumns).
			AddRow(1, "Q1", "A1", 1, 1).
			AddRow(2, "Q2", "A2", 1, 2))

	questions, err := repo.SearchQuestions(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, questions, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManagerAdapter(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		db, mock := setupTestDB(t)
		tm := NewTransactionManagerAdapter(db)
		repo := NewCategoryDatabaseAdapter(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(insertCategoryQuery)).
			WithArgs("Geography").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
			return repo.SaveCategory(ctx, &domain.Category{Type: "Geography"})
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		db, mock := setupTestDB(t)
		tm := NewTransactionManagerAdapter(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		fnErr := errors.New("seed failed")
		err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
			return fnErr
		})
		assert.ErrorIs(t, err, fnErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
