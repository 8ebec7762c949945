package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	// pgxpool
	UserRepo UserRepository

	// sqlx + squirrel
	ProjectRepo ProjectRepository
	TaskRepo    TaskRepository
}

func NewRepositories(pool *pgxpool.Pool, db *sqlx.DB) *Repositories {
	return &Repositories{
		UserRepo:    NewUserRepository(pool),
		ProjectRepo: NewProjectRepository(db),
		TaskRepo:    NewTaskRepository(db),
	}
}
