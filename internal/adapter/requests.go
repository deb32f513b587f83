package adapter

import (
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-lms-sync/models"
)

// GetCoursesRequest lists the courses the user is enrolled in.
type GetCoursesRequest struct {
	jsonResult[[]models.APICourse]
}

func (GetCoursesRequest) Method() string { return http.MethodGet }
func (GetCoursesRequest) Path() string   { return "/api/v1/courses" }

func (GetCoursesRequest) Query() url.Values {
	return url.Values{
		"include[]": {"course_image", "favorites"},
		"state[]":   {"available", "completed"},
	}
}

// GetCourseRequest loads a single course.
type GetCourseRequest struct {
	jsonResult[models.APICourse]
	CourseID string
}

func (GetCourseRequest) Method() string    { return http.MethodGet }
func (GetCourseRequest) Query() url.Values { return noQuery() }

func (r GetCourseRequest) Path() string {
	return "/api/v1/courses/" + url.PathEscape(r.CourseID)
}

// GetAssignmentsRequest lists a course's assignments in position order.
type GetAssignmentsRequest struct {
	jsonResult[[]models.APIAssignment]
	CourseID string
}

func (GetAssignmentsRequest) Method() string { return http.MethodGet }

func (r GetAssignmentsRequest) Path() string {
	return "/api/v1/courses/" + url.PathEscape(r.CourseID) + "/assignments"
}

func (GetAssignmentsRequest) Query() url.Values {
	return url.Values{"order_by": {"position"}}
}

// GetQuizzesRequest lists a course's quizzes.
type GetQuizzesRequest struct {
	jsonResult[[]models.APIQuiz]
	CourseID string
}

func (GetQuizzesRequest) Method() string { return http.MethodGet }

func (r GetQuizzesRequest) Path() string {
	return "/api/v1/courses/" + url.PathEscape(r.CourseID) + "/quizzes"
}

func (GetQuizzesRequest) Query() url.Values { return noQuery() }

// GetCustomColorsRequest loads the user's custom context colors.
type GetCustomColorsRequest struct {
	jsonResult[models.APICustomColors]
}

func (GetCustomColorsRequest) Method() string    { return http.MethodGet }
func (GetCustomColorsRequest) Path() string      { return "/api/v1/users/self/colors" }
func (GetCustomColorsRequest) Query() url.Values { return noQuery() }
