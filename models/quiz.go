// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strconv"
	"time"
)

// QuizzesTable is the local table holding [Quiz] rows.
const QuizzesTable = "quizzes"

// Quiz is the locally cached representation of a quiz. The quiz type is kept
// as its raw string so that unknown kinds survive a round trip through the
// cache.
type Quiz struct {
	RowID int64

	ID             string
	CourseID       string
	Title          string
	HTMLURL        string
	QuizTypeRaw    string
	PointsPossible *float64
	QuestionCount  int
	DueAt          *time.Time
	LockAt         *time.Time
}

// QuizType returns the typed quiz kind.
func (q *Quiz) QuizType() QuizType {
	return QuizType(q.QuizTypeRaw)
}

// GradingType is how the quiz is graded. Quizzes are always graded in
// points.
func (q *Quiz) GradingType() string {
	return "points"
}

// ViewableScore is the score to display to the student. The cache holds no
// submissions, so there is never a score to show.
func (q *Quiz) ViewableScore() *float64 {
	return nil
}

// ViewableGrade is the grade to display next to the score; nil whenever
// [Quiz.ViewableScore] is nil.
func (q *Quiz) ViewableGrade() *string {
	if q.ViewableScore() == nil {
		return nil
	}
	grade := strconv.FormatFloat(*q.ViewableScore(), 'f', -1, 64)
	return &grade
}

// PointsText formats PointsPossible, e.g. "1 pt" or "12.5 pts". It is empty
// when the quiz has no points.
func (q *Quiz) PointsText() string {
	if q.PointsPossible == nil {
		return ""
	}
	points := strconv.FormatFloat(*q.PointsPossible, 'f', -1, 64)
	if *q.PointsPossible == 1 {
		return points + " pt"
	}
	return points + " pts"
}

func (q *Quiz) TableName() string {
	return QuizzesTable
}

func (q *Quiz) Columns() []string {
	return []string{
		"id", "course_id", "title", "html_url", "quiz_type",
		"points_possible", "question_count", "due_at", "lock_at",
	}
}

func (q *Quiz) Values() []any {
	return []any{
		q.ID, q.CourseID, q.Title, q.HTMLURL, q.QuizTypeRaw,
		q.PointsPossible, q.QuestionCount, q.DueAt, q.LockAt,
	}
}

func (q *Quiz) ScanTargets() []any {
	return []any{
		&q.ID, &q.CourseID, &q.Title, &q.HTMLURL, &q.QuizTypeRaw,
		&q.PointsPossible, &q.QuestionCount, &q.DueAt, &q.LockAt,
	}
}

func (q *Quiz) PrimaryKey() int64 {
	return q.RowID
}

func (q *Quiz) SetPrimaryKey(id int64) {
	q.RowID = id
}
