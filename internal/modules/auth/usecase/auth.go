package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fitterm/internal/modules/auth/domain"
	authin "fitterm/internal/modules/auth/port/in"
	authout "fitterm/internal/modules/auth/port/out"
	"fitterm/internal/platform/clock"
	apperrors "fitterm/internal/platform/errors"
)

type Interactor struct {
	api   authout.API
	store authout.SessionStore
	clock clock.Clock
	log   *slog.Logger
}

func NewInteractor(api authout.API, store authout.SessionStore, clock clock.Clock, log *slog.Logger) authin.Usecase {
	return &Interactor{api: api, store: store, clock: clock, log: log}
}

func (i *Interactor) Login(ctx context.Context, email, password string) (domain.Session, error) {
	session, err := i.api.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	if err := i.store.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	i.log.InfoContext(ctx, "logged in", "user", session.User.Email)
	return session, nil
}

func (i *Interactor) Register(ctx context.Context, name, email, password string) (domain.Session, error) {
	session, err := i.api.Register(ctx, name, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	if err := i.store.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.store.Clear(ctx)
}

func (i *Interactor) Current(ctx context.Context) (domain.Session, error) {
	session, err := i.store.Load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	if expired, at := tokenExpired(session.Token, i.clock.Now()); expired {
		i.log.InfoContext(ctx, "stored token expired", "expired_at", at)
		if err := i.store.Clear(ctx); err != nil {
			return domain.Session{}, err
		}
		return domain.Session{}, apperrors.ErrNoSession
	}

	// Restore also refreshes the profile when the server is reachable; the
	// stored copy serves offline. A rejected token means no session at all.
	user, err := i.api.Me(ctx)
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		return domain.Session{}, apperrors.ErrNoSession
	case err != nil:
		i.log.DebugContext(ctx, "profile refresh skipped", "err", err)
	case user.ID != "" && user != session.User:
		session.User = user
		if err := i.store.Save(ctx, session); err != nil {
			i.log.WarnContext(ctx, "persist refreshed profile", "err", err)
		}
	}
	return session, nil
}

func (i *Interactor) UpdateUser(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := i.api.UpdateProfile(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	session, err := i.store.Load(ctx)
	if err != nil {
		return domain.User{}, err
	}
	session.User = updated
	if err := i.store.Save(ctx, session); err != nil {
		return domain.User{}, fmt.Errorf("persist session: %w", err)
	}
	return updated, nil
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; verification is the server's job, this only skips requests
// that are certain to bounce. Tokens that don't parse or carry no exp are
// left to the server to judge.
func tokenExpired(token string, now time.Time) (bool, time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, time.Time{}
	}
	return exp.Time.Before(now), exp.Time
}
