package out

import (
	"context"
	"fmt"

	"fitterm/internal/modules/auth/domain"
	authout "fitterm/internal/modules/auth/port/out"
	"fitterm/internal/platform/httpx"
)

type RESTAuth struct {
	client *httpx.Client
}

func NewRESTAuth(client *httpx.Client) authout.API {
	return &RESTAuth{client: client}
}

func (a *RESTAuth) Login(ctx context.Context, email, password string) (domain.Session, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var session domain.Session
	if err := a.client.Anonymous().Post(ctx, "/auth/login", body, &session); err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	return session, nil
}

func (a *RESTAuth) Register(ctx context.Context, name, email, password string) (domain.Session, error) {
	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Name: name, Email: email, Password: password}

	var session domain.Session
	if err := a.client.Anonymous().Post(ctx, "/auth/register", body, &session); err != nil {
		return domain.Session{}, fmt.Errorf("register: %w", err)
	}
	return session, nil
}

func (a *RESTAuth) Me(ctx context.Context) (domain.User, error) {
	var user domain.User
	if err := a.client.Get(ctx, "/auth/me", nil, &user); err != nil {
		return domain.User{}, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}

func (a *RESTAuth) UpdateProfile(ctx context.Context, user domain.User) (domain.User, error) {
	var updated domain.User
	if err := a.client.Put(ctx, "/user/profile", user, &updated); err != nil {
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}
