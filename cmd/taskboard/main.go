package main

import (
	"log"

	"github.com/taskio/taskboard/api"
	"github.com/taskio/taskboard/pkg/auth"
	"github.com/taskio/taskboard/pkg/config"
	"github.com/taskio/taskboard/pkg/repository"
	"github.com/taskio/taskboard/pkg/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := repository.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	issuer := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	userRepo := repository.NewUserRepository(db.DB)
	projectRepo := repository.NewProjectRepository(db.DB)
	taskRepo := repository.NewTaskRepository(db.DB)
	tagRepo := repository.NewTagRepository(db.DB)

	userService := service.NewUserService(userRepo)

	r := api.NewRouter(api.Services{
		Auth:     service.NewAuthService(userRepo, issuer),
		Users:    userService,
		Projects: service.NewProjectService(projectRepo),
		Tasks:    service.NewTaskService(taskRepo, projectRepo, userService),
		Tags:     service.NewTagService(tagRepo),
	})

	addr := cfg.Addr()
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
