package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// New creates a new session manager backed by SQLite. When db is nil (the
// in-memory store mode) sessions stay in scs's default in-memory store.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	if db != nil {
		sm.Store = sqlite3store.New(db)
	}

	// Configure session
	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}
