package usecase

// Test helpers shared with the external usecase_test package.
const CourseID = courseID

var (
	NewStore       = newStore
	QuizzesUseCase = quizzesUseCase
	APIQuiz        = apiQuiz
	StoredQuizzes  = storedQuizzes
)
