package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelkins/studyplanner/internal/common"
	"github.com/avelkins/studyplanner/internal/logging"
	"github.com/avelkins/studyplanner/internal/server/auth"
	"github.com/avelkins/studyplanner/internal/server/models"
	"github.com/avelkins/studyplanner/internal/server/services"
)

const testSecret = "test-secret"

// --- fakes ---

type fakeUserService struct {
	registerOut *models.User
	registerErr error

	loginUser *models.User
	loginPair *services.TokenPair
	loginErr  error

	refreshPair *services.TokenPair
	refreshErr  error

	profileOut *models.User
	profileErr error

	updateOut   *models.User
	updateErr   error
	updatedID   string
	updatedWith services.UserPatch
}

func (f *fakeUserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerOut, nil
}
func (f *fakeUserService) Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error) {
	if f.loginErr != nil {
		return nil, nil, f.loginErr
	}
	return f.loginUser, f.loginPair, nil
}
func (f *fakeUserService) RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshPair, nil
}
func (f *fakeUserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profileOut, nil
}
func (f *fakeUserService) Update(ctx context.Context, userID string, patch services.UserPatch) (*models.User, error) {
	f.updatedID = userID
	f.updatedWith = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

type fakeSubjectService struct {
	listOut []*models.Subject
	listErr error

	getOut *models.Subject
	getErr error

	createOut *models.Subject
	createErr error

	updateOut *models.Subject
	updateErr error

	deleteOut *services.DeleteResult
	deleteErr error
}

func (f *fakeSubjectService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Subject, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}
func (f *fakeSubjectService) Get(ctx context.Context, id string, ownerID string) (*models.Subject, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeSubjectService) Create(ctx context.Context, ownerID string, name, color string) (*models.Subject, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}
func (f *fakeSubjectService) Update(ctx context.Context, id string, ownerID string, patch services.SubjectPatch) (*models.Subject, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}
func (f *fakeSubjectService) Delete(ctx context.Context, id string, ownerID string) (*services.DeleteResult, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.deleteOut, nil
}

type fakeTaskService struct {
	listOut   []*models.Task
	listErr   error
	gotFilter string

	bySubjectOut []*models.Task
	bySubjectErr error

	getOut *models.Task
	getErr error

	createOut  *models.Task
	createErr  error
	gotInput   services.TaskInput
	gotOwnerID string

	updateOut *models.Task
	updateErr error

	deleteOut *services.DeleteResult
	deleteErr error
}

func (f *fakeTaskService) ListByOwner(ctx context.Context, ownerID string, filter string) ([]*models.Task, error) {
	f.gotFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}
func (f *fakeTaskService) ListBySubject(ctx context.Context, ownerID string, subjectID string) ([]*models.Task, error) {
	if f.bySubjectErr != nil {
		return nil, f.bySubjectErr
	}
	return f.bySubjectOut, nil
}
func (f *fakeTaskService) Get(ctx context.Context, id string, ownerID string) (*models.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeTaskService) Create(ctx context.Context, ownerID string, input services.TaskInput) (*models.Task, error) {
	f.gotOwnerID = ownerID
	f.gotInput = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}
func (f *fakeTaskService) Update(ctx context.Context, id string, ownerID string, patch services.TaskPatch) (*models.Task, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}
func (f *fakeTaskService) Delete(ctx context.Context, id string, ownerID string) (*services.DeleteResult, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.deleteOut, nil
}

// --- helpers ---

func newTestServer(t *testing.T, us userService, ss subjectService, ts taskService) *echo.Echo {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s, err := NewHTTPServer(":0", logger, us, ss, ts, testSecret)
	if err != nil {
		t.Fatalf("NewHTTPServer error: %v", err)
	}
	return s.newEcho()
}

func authToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte(testSecret), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return token
}

func doJSON(t *testing.T, e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(common.AccessTokenHeaderName, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var p errorPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("error payload decode: %v (body %q)", err, rec.Body.String())
	}
	return p
}
