package models

// Category maps a row of the categories table.
type Category struct {
	ID   int64  `db:"id"`
	Type string `db:"type"`
}

// Question maps a row of the questions table.
type Question struct {
	ID         int64  `db:"id"`
	Question   string `db:"question"`
	Answer     string `db:"answer"`
	Difficulty int    `db:"difficulty"`
	CategoryID int64  `db:"category_id"`
}

// QuestionWithTotal is a Question row carrying the size of the unpaged result
// set (COUNT(*) OVER ()).
type QuestionWithTotal struct {
	Question
	TotalCount int `db:"total_count"`
}
