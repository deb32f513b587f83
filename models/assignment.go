// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AssignmentsTable is the local table holding [Assignment] rows.
const AssignmentsTable = "assignments"

// Assignment is the locally cached representation of a course assignment.
type Assignment struct {
	RowID int64

	ID             string
	CourseID       string
	Name           string
	Details        *string
	PointsPossible *float64
	DueAt          *time.Time
	HTMLURL        string
	Position       int
	GradingType    string
	QuizID         *string
}

func (a *Assignment) TableName() string {
	return AssignmentsTable
}

func (a *Assignment) Columns() []string {
	return []string{
		"id", "course_id", "name", "details", "points_possible",
		"due_at", "html_url", "position", "grading_type", "quiz_id",
	}
}

func (a *Assignment) Values() []any {
	return []any{
		a.ID, a.CourseID, a.Name, a.Details, a.PointsPossible,
		a.DueAt, a.HTMLURL, a.Position, a.GradingType, a.QuizID,
	}
}

func (a *Assignment) ScanTargets() []any {
	return []any{
		&a.ID, &a.CourseID, &a.Name, &a.Details, &a.PointsPossible,
		&a.DueAt, &a.HTMLURL, &a.Position, &a.GradingType, &a.QuizID,
	}
}

func (a *Assignment) PrimaryKey() int64 {
	return a.RowID
}

func (a *Assignment) SetPrimaryKey(id int64) {
	a.RowID = id
}
