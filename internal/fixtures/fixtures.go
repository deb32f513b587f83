// Package fixtures holds canned LMS API data served by the mock API and by
// the UI-test driver.
package fixtures

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/MKhiriev/go-lms-sync/models"
)

var (
	ErrReadingFixtures = errors.New("error reading fixtures")
	ErrCourseNotFound  = errors.New("course not found")
)

// Set is the content of a fixture file. Assignments and quizzes are keyed by
// course id.
type Set struct {
	Courses      []models.APICourse                `json:"courses"`
	Assignments  map[string][]models.APIAssignment `json:"assignments,omitempty"`
	Quizzes      map[string][]models.APIQuiz       `json:"quizzes,omitempty"`
	CustomColors map[string]string                 `json:"custom_colors,omitempty"`
}

// Load reads a fixture file.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingFixtures, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a fixture set from r. Unknown fields are rejected so that
// typos in hand-written fixtures surface early.
func Parse(r io.Reader) (*Set, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var set Set
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingFixtures, err)
	}
	return &set, nil
}

// Course returns the course with id.
func (s *Set) Course(id string) (models.APICourse, error) {
	for _, course := range s.Courses {
		if course.ID.String() == id {
			return course, nil
		}
	}
	return models.APICourse{}, fmt.Errorf("%w: %s", ErrCourseNotFound, id)
}

// CourseAssignments returns the assignments of course id ordered by
// position.
func (s *Set) CourseAssignments(id string) ([]models.APIAssignment, error) {
	if _, err := s.Course(id); err != nil {
		return nil, err
	}

	assignments := append([]models.APIAssignment{}, s.Assignments[id]...)
	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].Position < assignments[j].Position
	})
	return assignments, nil
}

// CourseQuizzes returns the quizzes of course id.
func (s *Set) CourseQuizzes(id string) ([]models.APIQuiz, error) {
	if _, err := s.Course(id); err != nil {
		return nil, err
	}
	return append([]models.APIQuiz{}, s.Quizzes[id]...), nil
}

// Colors returns the custom colors response.
func (s *Set) Colors() models.APICustomColors {
	colors := make(map[string]string, len(s.CustomColors))
	for contextID, hex := range s.CustomColors {
		colors[contextID] = hex
	}
	return models.APICustomColors{CustomColors: colors}
}
