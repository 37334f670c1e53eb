package repository

import (
	"fmt"

	"github.com/deppfellow/todo-api/internal/config"
	"github.com/deppfellow/todo-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Items ItemRepository
}

// NewRepositories builds the repositories on top of the storage handle
// the server opened for Config.Database.Driver.
func NewRepositories(s *server.Server) (*Repositories, error) {
	var items ItemRepository

	switch s.Config.Database.Driver {
	case config.DriverPostgres:
		if s.DB == nil {
			return nil, fmt.Errorf("postgres driver selected but no pool is open")
		}
		items = NewPostgresItemRepository(s.DB.Pool)

	case config.DriverSQLite:
		if s.SQLite == nil {
			return nil, fmt.Errorf("sqlite driver selected but no database is open")
		}
		items = NewSQLiteItemRepository(s.SQLite.DB)

	case config.DriverRedis:
		if s.Redis == nil {
			return nil, fmt.Errorf("redis driver selected but no client is open")
		}
		items = NewRedisItemRepository(s.Redis)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", s.Config.Database.Driver)
	}

	return &Repositories{Items: items}, nil
}
