// Package httpapi exposes the application services over a JSON REST API.
// Routes live under /api/v1; protected routes expect an access token in
// the auth-token header.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avelkins/studyplanner/internal/logging"
	"github.com/avelkins/studyplanner/internal/server/models"
	"github.com/avelkins/studyplanner/internal/server/services"
)

type userService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, patch services.UserPatch) (*models.User, error)
}

type subjectService interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Subject, error)
	Get(ctx context.Context, id string, ownerID string) (*models.Subject, error)
	Create(ctx context.Context, ownerID string, name, color string) (*models.Subject, error)
	Update(ctx context.Context, id string, ownerID string, patch services.SubjectPatch) (*models.Subject, error)
	Delete(ctx context.Context, id string, ownerID string) (*services.DeleteResult, error)
}

type taskService interface {
	ListByOwner(ctx context.Context, ownerID string, filter string) ([]*models.Task, error)
	ListBySubject(ctx context.Context, ownerID string, subjectID string) ([]*models.Task, error)
	Get(ctx context.Context, id string, ownerID string) (*models.Task, error)
	Create(ctx context.Context, ownerID string, input services.TaskInput) (*models.Task, error)
	Update(ctx context.Context, id string, ownerID string, patch services.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id string, ownerID string) (*services.DeleteResult, error)
}

type HTTPServer struct {
	address   string
	logger    logging.Logger
	users     userService
	subjects  subjectService
	tasks     taskService
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us userService, ss subjectService, ts taskService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		subjects:  ss,
		tasks:     ts,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *HTTPServer) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(s.requestLogger())

	api := e.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.registerUser)
	authGroup.POST("/login", s.loginUser)
	authGroup.POST("/refresh", s.refreshToken)
	authGroup.GET("/profile", s.userProfile, s.accessTokenMiddleware)
	authGroup.PATCH("/:id", s.updateUser, s.accessTokenMiddleware)

	tasksGroup := api.Group("/tasks", s.accessTokenMiddleware)
	tasksGroup.GET("/user", s.listTasks)
	tasksGroup.GET("/subject/:id", s.listTasksBySubject)
	tasksGroup.GET("/:id", s.getTask)
	tasksGroup.POST("", s.createTask)
	tasksGroup.PATCH("/:id", s.updateTask)
	tasksGroup.DELETE("/:id", s.deleteTask)

	subjectGroup := api.Group("/subject", s.accessTokenMiddleware)
	subjectGroup.GET("", s.listSubjects)
	subjectGroup.GET("/:id", s.getSubject)
	subjectGroup.POST("", s.createSubject)
	subjectGroup.PATCH("/:id", s.updateSubject)
	subjectGroup.DELETE("/:id", s.deleteSubject)

	return e
}

func (s *HTTPServer) Run(ctx context.Context) error {

	e := s.newEcho()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
