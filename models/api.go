// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// APICourse is one element of the GET /api/v1/courses response.
type APICourse struct {
	ID               ID      `json:"id"`
	Name             string  `json:"name"`
	CourseCode       string  `json:"course_code"`
	IsFavorite       *bool   `json:"is_favorite,omitempty"`
	DefaultView      string  `json:"default_view,omitempty"`
	ImageDownloadURL *string `json:"image_download_url,omitempty"`
}

// APIAssignment is one element of the GET /api/v1/courses/:id/assignments
// response.
type APIAssignment struct {
	ID             ID         `json:"id"`
	CourseID       ID         `json:"course_id"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	PointsPossible *float64   `json:"points_possible,omitempty"`
	DueAt          *time.Time `json:"due_at,omitempty"`
	HTMLURL        string     `json:"html_url"`
	Position       int        `json:"position"`
	GradingType    string     `json:"grading_type,omitempty"`
	QuizID         *ID        `json:"quiz_id,omitempty"`
}

// APIQuiz is one element of the GET /api/v1/courses/:id/quizzes response.
type APIQuiz struct {
	ID             ID         `json:"id"`
	Title          string     `json:"title"`
	HTMLURL        string     `json:"html_url"`
	QuizType       QuizType   `json:"quiz_type"`
	PointsPossible *float64   `json:"points_possible,omitempty"`
	QuestionCount  int        `json:"question_count"`
	DueAt          *time.Time `json:"due_at,omitempty"`
	LockAt         *time.Time `json:"lock_at,omitempty"`
}

// APICustomColors is the GET /api/v1/users/self/colors response. Keys are
// context ids such as "course_1", values are hex colors.
type APICustomColors struct {
	CustomColors map[string]string `json:"custom_colors"`
}

// APIContextColor is a single (context, color) pair flattened out of
// [APICustomColors] so it can be reconciled like any other collection item.
type APIContextColor struct {
	CanvasContextID string
	Color           string
}
