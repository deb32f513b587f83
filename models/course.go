// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CoursesTable is the local table holding [Course] rows.
const CoursesTable = "courses"

// Course is the locally cached representation of a course.
type Course struct {
	// RowID is the local primary key assigned by the database.
	RowID int64

	// ID is the server-assigned course id.
	ID               string
	Name             string
	CourseCode       string
	IsFavorite       bool
	DefaultView      string
	ImageDownloadURL *string
}

// CanvasContextID returns the context id used by custom colors and routes,
// e.g. "course_42".
func (c *Course) CanvasContextID() string {
	return "course_" + c.ID
}

// TableName returns the name of the database table associated with Course.
func (c *Course) TableName() string {
	return CoursesTable
}

func (c *Course) Columns() []string {
	return []string{"id", "name", "course_code", "is_favorite", "default_view", "image_download_url"}
}

func (c *Course) Values() []any {
	return []any{c.ID, c.Name, c.CourseCode, c.IsFavorite, c.DefaultView, c.ImageDownloadURL}
}

func (c *Course) ScanTargets() []any {
	return []any{&c.ID, &c.Name, &c.CourseCode, &c.IsFavorite, &c.DefaultView, &c.ImageDownloadURL}
}

func (c *Course) PrimaryKey() int64 {
	return c.RowID
}

func (c *Course) SetPrimaryKey(id int64) {
	c.RowID = id
}
