package in

import (
	"context"

	"fitterm/internal/modules/auth/domain"
)

type Usecase interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Register(ctx context.Context, name, email, password string) (domain.Session, error)
	Logout(ctx context.Context) error

	// Current returns the stored session, clearing it first when the token
	// has already expired.
	Current(ctx context.Context) (domain.Session, error)

	// UpdateUser pushes profile changes to the server and persists the
	// returned user in the stored session.
	UpdateUser(ctx context.Context, user domain.User) (domain.User, error)
}
