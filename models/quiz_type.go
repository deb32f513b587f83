package models

// QuizType is the raw quiz kind reported by the LMS.
type QuizType string

const (
	QuizTypeAssignment   QuizType = "assignment"
	QuizTypePracticeQuiz QuizType = "practice_quiz"
	QuizTypeGradedSurvey QuizType = "graded_survey"
	QuizTypeSurvey       QuizType = "survey"
)

// Valid reports whether t is one of the known quiz kinds.
func (t QuizType) Valid() bool {
	switch t {
	case QuizTypeAssignment, QuizTypePracticeQuiz, QuizTypeGradedSurvey, QuizTypeSurvey:
		return true
	}
	return false
}
