package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-organizer-api/internal/constants"
	"github.com/yukikurage/task-organizer-api/internal/database"
	"github.com/yukikurage/task-organizer-api/internal/repository"
	"github.com/yukikurage/task-organizer-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a migrated in-memory SQLite database. A single connection
// keeps every query on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.AddIndexes(db))
	database.SetDB(db)

	return db
}

// newTestRouter wires the full API on db with a cookie session store.
func newTestRouter(db *gorm.DB) *gin.Engine {
	return newTestRouterWithStore(db, cookie.NewStore([]byte("secret")))
}

func newTestRouterWithStore(db *gorm.DB, store sessions.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tagRepo := repository.NewTagRepository(db)

	RegisterRoutes(r, Handlers{
		Auth: NewAuthHandler(services.NewAuthService(userRepo).WithBcryptCost(bcrypt.MinCost), store),
		Task: NewTaskHandler(services.NewTaskService(taskRepo, tagRepo)),
		Tag:  NewTagHandler(services.NewTagService(tagRepo)),
	})

	return r
}

// apiClient sends requests through the router and carries the session
// cookie between them like a browser would.
type apiClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newAPIClient(t *testing.T, router *gin.Engine) *apiClient {
	return &apiClient{t: t, router: router, cookies: map[string]*http.Cookie{}}
}

func (a *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewBufferString(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		payload, err := json.Marshal(b)
		require.NoError(a.t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	}

	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(a.cookies, c.Name)
			continue
		}
		a.cookies[c.Name] = c
	}

	return w
}

// register creates an account and leaves the client logged in as it.
func (a *apiClient) register(email, password string) map[string]any {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/register", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["user"].(map[string]any)
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
