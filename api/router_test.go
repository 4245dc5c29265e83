package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskio/taskboard/pkg/auth"
	"github.com/taskio/taskboard/pkg/repository"
	"github.com/taskio/taskboard/pkg/service"
)

var testRouterSeq int

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testRouterSeq++
	dsn := fmt.Sprintf("file:routertest%d?mode=memory&cache=shared", testRouterSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	issuer := auth.NewIssuer("router-test-secret", time.Hour)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	users := service.NewUserService(userRepo)

	return NewRouter(Services{
		Auth:     service.NewAuthService(userRepo, issuer),
		Users:    users,
		Projects: service.NewProjectService(projectRepo),
		Tasks:    service.NewTaskService(repository.NewTaskRepository(db), projectRepo, users),
		Tags:     service.NewTagService(repository.NewTagRepository(db)),
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

// registerAndLogin creates a user over HTTP and returns its id and a
// bearer token.
func registerAndLogin(t *testing.T, r *gin.Engine, name, email string) (uint, string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/user", "", gin.H{
		"name": name, "email": email, "password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /user = %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	decode(t, w, &created)

	w = doJSON(t, r, http.MethodPost, "/user/login", "", gin.H{
		"email": email, "password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("POST /user/login = %d: %s", w.Code, w.Body.String())
	}
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &login)
	if login.AccessToken == "" {
		t.Fatal("login response carries no access_token")
	}
	return created.ID, login.AccessToken
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/ping", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /ping = %d", w.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	decode(t, w, &body)
	if body.Message != "pong" {
		t.Errorf("GET /ping message = %q, want pong", body.Message)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("response carries no X-Request-ID header")
	}
}

func TestRegisterStripsPassword(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/user", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /user = %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	decode(t, w, &body)
	if _, leaked := body["password"]; leaked {
		t.Error("register response leaks the password field")
	}
	if body["email"] != "ada@example.com" {
		t.Errorf("register response email = %v", body["email"])
	}

	// Duplicate registration is rejected.
	w = doJSON(t, r, http.MethodPost, "/user", "", gin.H{
		"name": "Ada2", "email": "ada@example.com", "password": "secret123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate POST /user = %d, want 400", w.Code)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	r := newTestRouter(t)
	registerAndLogin(t, r, "Ada", "ada@example.com")

	w := doJSON(t, r, http.MethodPost, "/user/login", "", gin.H{
		"email": "ada@example.com", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("POST /user/login with bad password = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/user/login", "", gin.H{
		"email": "nobody@example.com", "password": "secret123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("POST /user/login for unknown user = %d, want 401", w.Code)
	}
}

func TestProjectTaskRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	adaID, adaToken := registerAndLogin(t, r, "Ada", "ada@example.com")
	bobID, bobToken := registerAndLogin(t, r, "Bob", "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/projects", adaToken, gin.H{
		"name":        "apollo",
		"description": "moonshot",
		"settings":    gin.H{"visibility": "private"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /projects = %d: %s", w.Code, w.Body.String())
	}
	var project struct {
		ID        uint `json:"id"`
		CreatorID uint `json:"creator_id"`
	}
	decode(t, w, &project)
	if project.CreatorID != adaID {
		t.Errorf("project creator = %d, want %d", project.CreatorID, adaID)
	}

	w = doJSON(t, r, http.MethodPost, "/tags", "", gin.H{"title": "urgent"})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /tags = %d: %s", w.Code, w.Body.String())
	}
	var tag struct {
		ID uint `json:"id"`
	}
	decode(t, w, &tag)

	// Bob is not a member yet, so task creation is rejected.
	taskBody := gin.H{
		"title":     "wire telemetry",
		"projectId": project.ID,
		"tags":      []uint{tag.ID},
	}
	w = doJSON(t, r, http.MethodPost, "/tasks", bobToken, taskBody)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /tasks by non-member = %d, want 400", w.Code)
	}

	// Only the creator may add members.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/projects/%d/members", project.ID), bobToken, gin.H{
		"memberIds": []uint{bobID},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /projects/:id/members by non-creator = %d, want 400", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/projects/%d/members", project.ID), adaToken, gin.H{
		"memberIds": []uint{bobID},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("POST /projects/:id/members by creator = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/tasks", bobToken, taskBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /tasks by member = %d: %s", w.Code, w.Body.String())
	}
	var task struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
		Tags   []struct {
			ID uint `json:"id"`
		} `json:"tags"`
	}
	decode(t, w, &task)
	if task.Status != "PENDING" {
		t.Errorf("created task status = %q, want PENDING", task.Status)
	}
	if len(task.Tags) != 1 || task.Tags[0].ID != tag.ID {
		t.Errorf("created task tags = %v, want [%d]", task.Tags, tag.ID)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/tasks/%d/assignees", task.ID), "", gin.H{
		"userId": bobID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("POST /tasks/:id/assignees = %d: %s", w.Code, w.Body.String())
	}
}

func TestErrorStatusMapping(t *testing.T) {
	r := newTestRouter(t)
	_, token := registerAndLogin(t, r, "Ada", "ada@example.com")

	// Non-positive page.
	if w := doJSON(t, r, http.MethodGet, "/user?page=0&size=10", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("GET /user?page=0 = %d, want 400", w.Code)
	}
	// Missing entity.
	if w := doJSON(t, r, http.MethodGet, "/projects/999", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("GET /projects/999 = %d, want 404", w.Code)
	}
	// Non-numeric id.
	if w := doJSON(t, r, http.MethodGet, "/tasks/abc", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("GET /tasks/abc = %d, want 400", w.Code)
	}
	// Missing Authorization header.
	if w := doJSON(t, r, http.MethodPost, "/projects", "", gin.H{"name": "x"}); w.Code != http.StatusBadRequest {
		t.Errorf("POST /projects without token = %d, want 400", w.Code)
	}
	// Unverifiable token string.
	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewBufferString(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("POST /projects with malformed token = %d, want 400", w.Code)
	}

	// Pagination shape.
	w = doJSON(t, r, http.MethodGet, "/user?page=1&size=10", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /user = %d: %s", w.Code, w.Body.String())
	}
	var page struct {
		Users       []json.RawMessage `json:"users"`
		CurrentPage int               `json:"currentPage"`
		PageSize    int               `json:"pageSize"`
	}
	decode(t, w, &page)
	if page.CurrentPage != 1 || page.PageSize != len(page.Users) {
		t.Errorf("GET /user page = %+v, want currentPage 1 and pageSize %d", page, len(page.Users))
	}
}
