package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/yigit/uniactivity/internal/app/services"
	"github.com/yigit/uniactivity/internal/db"
)

// psql builds statements with PostgreSQL placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	ClassRepository      *ClassRepository
	AssistanceRepository *AssistanceRepository
}

// interface compliance checks
var (
	_ services.UserStore       = (*UserRepository)(nil)
	_ services.ClassStore      = (*ClassRepository)(nil)
	_ services.AssistanceStore = (*AssistanceRepository)(nil)
)

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(database),
		ClassRepository:      NewClassRepository(database),
		AssistanceRepository: NewAssistanceRepository(database),
	}
}
