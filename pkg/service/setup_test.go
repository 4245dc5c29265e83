package service

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskio/taskboard/pkg/auth"
	"github.com/taskio/taskboard/pkg/models"
	"github.com/taskio/taskboard/pkg/repository"
)

var testIssuer = auth.NewIssuer("test-secret", time.Hour)

// fixture wires every service over an in-memory database.
type fixture struct {
	db       *gorm.DB
	auth     *AuthService
	users    *UserService
	projects *ProjectService
	tasks    *TaskService
	tags     *TagService
}

var testDBSeq int

func newFixture(t *testing.T) *fixture {
	t.Helper()

	// A named shared-cache database so every pooled connection sees
	// the same data.
	testDBSeq++
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	users := NewUserService(userRepo)

	return &fixture{
		db:       db,
		auth:     NewAuthService(userRepo, testIssuer),
		users:    users,
		projects: NewProjectService(projectRepo),
		tasks:    NewTaskService(repository.NewTaskRepository(db), projectRepo, users),
		tags:     NewTagService(repository.NewTagRepository(db)),
	}
}

func (f *fixture) seedUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Name: name, Email: email, Password: hash}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func (f *fixture) seedTag(t *testing.T, title string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Title: title}
	if err := f.db.Create(tag).Error; err != nil {
		t.Fatalf("failed to seed tag: %v", err)
	}
	return tag
}

// seedProject creates a project through the service so the creator is
// enrolled as a member.
func (f *fixture) seedProject(t *testing.T, name string, creatorID uint) *models.Project {
	t.Helper()
	project, err := f.projects.Create(CreateProject{Name: name}, bearer(t, creatorID))
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func bearer(t *testing.T, userID uint) string {
	t.Helper()
	token, err := testIssuer.Issue(userID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return "Bearer " + token
}
