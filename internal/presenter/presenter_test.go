package presenter

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-lms-sync/internal/adapter"
	"github.com/MKhiriev/go-lms-sync/internal/color"
	"github.com/MKhiriev/go-lms-sync/internal/config"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/mock"
	"github.com/MKhiriev/go-lms-sync/internal/store"
	"github.com/MKhiriev/go-lms-sync/models"
)

func newTestStore(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.NewClientStorage(context.Background(), config.ClientStorage{DB: config.ClientDB{DSN: ":memory:"}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func ok(body string) *adapter.Response {
	return &adapter.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(body)}
}

func expectGet(api *mock.MockAPI, path string) *gomock.Call {
	return api.EXPECT().Do(gomock.Any(), http.MethodGet, path, gomock.Any())
}

// offlineAPI fails every request.
func offlineAPI(t *testing.T) *mock.MockAPI {
	api := mock.NewMockAPI(gomock.NewController(t))
	api.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, adapter.ErrInternalServerError).
		AnyTimes()
	return api
}

func seed(t *testing.T, db *store.DB, fill func(tx *store.Tx)) {
	t.Helper()
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	fill(tx)
	require.NoError(t, tx.Save(ctx))
}

func seedCourse(t *testing.T, tx *store.Tx, id, name string, favorite bool) {
	t.Helper()
	course, err := store.Insert[models.Course](tx)
	require.NoError(t, err)
	course.ID = id
	course.Name = name
	course.CourseCode = "C" + id
	course.IsFavorite = favorite
}

func seedColor(t *testing.T, tx *store.Tx, contextID, hex string) {
	t.Helper()
	c, err := store.Insert[models.Color](tx)
	require.NoError(t, err)
	c.CanvasContextID = contextID
	c.Hex = hex
}

func seedQuiz(t *testing.T, tx *store.Tx, courseID, id string, quizType string) {
	t.Helper()
	quiz, err := store.Insert[models.Quiz](tx)
	require.NoError(t, err)
	quiz.ID = id
	quiz.CourseID = courseID
	quiz.Title = "Quiz " + id
	quiz.HTMLURL = "https://canvas.example.com/courses/" + courseID + "/quizzes/" + id
	quiz.QuizTypeRaw = quizType
}

type navBar struct {
	subtitle string
	color    *color.Color
}

type spyView struct {
	mu      sync.Mutex
	updates []bool
	errs    []error
	navBars []navBar
}

func (v *spyView) Update(isLoading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.updates = append(v.updates, isLoading)
}

func (v *spyView) ShowError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errs = append(v.errs, err)
}

func (v *spyView) UpdateNavBar(subtitle string, c *color.Color) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.navBars = append(v.navBars, navBar{subtitle: subtitle, color: c})
}

type routeCall struct {
	to      *url.URL
	options []RouteOption
}

type spyRouter struct {
	calls []routeCall
}

func (r *spyRouter) Route(to *url.URL, options ...RouteOption) {
	r.calls = append(r.calls, routeCall{to: to, options: options})
}
