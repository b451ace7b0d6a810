package out

import (
	"context"

	"fitterm/internal/modules/auth/domain"
)

// API is the server's auth surface. Login and Register must go through an
// unauthenticated client so their 401s surface inline.
type API interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Register(ctx context.Context, name, email, password string) (domain.Session, error)
	Me(ctx context.Context) (domain.User, error)
	UpdateProfile(ctx context.Context, user domain.User) (domain.User, error)
}

// SessionStore persists the session between runs; the browser-storage
// analog.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Load(ctx context.Context) (domain.Session, error)
	Clear(ctx context.Context) error
}
