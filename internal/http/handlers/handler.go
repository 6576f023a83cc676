package handlers

import (
	"taskmanager/internal/repository"
	"taskmanager/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB     *pgxpool.Pool
	Users  *repository.UserRepository
	Tasks  *repository.TaskRepository
	Tokens *service.TokenService
}

func NewHandler(db *pgxpool.Pool, tokens *service.TokenService) *Handler {
	return &Handler{
		DB:     db,
		Users:  repository.NewUserRepository(db),
		Tasks:  repository.NewTaskRepository(db),
		Tokens: tokens,
	}
}
