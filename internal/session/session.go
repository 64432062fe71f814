package session

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	gormStore "github.com/gin-contrib/sessions/gorm"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/yukikurage/task-organizer-api/internal/config"
	"gorm.io/gorm"
)

// NewStore builds the server-side session store selected by SESSION_STORE.
// The client only ever holds a signed, opaque session id.
func NewStore(cfg *config.Config, db *gorm.DB) (sessions.Store, error) {
	var store sessions.Store

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		rs, err := redisStore.NewStore(
			cfg.RedisPoolSize,
			"tcp",
			cfg.RedisAddr(),
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
		store = rs
	case config.SessionStoreDatabase:
		store = gormStore.NewStore(db, true, []byte(cfg.SessionSecret))
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	store.Options(Options(cfg))
	return store, nil
}

// Options returns the cookie attributes: HTTP-only, SameSite=Lax, Secure in
// release mode, and the configured lifetime.
func Options(cfg *config.Config) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}
