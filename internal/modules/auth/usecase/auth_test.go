package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fitterm/internal/modules/auth/domain"
	"fitterm/internal/modules/auth/usecase"
	apperrors "fitterm/internal/platform/errors"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

type fakeAPI struct {
	session domain.Session
	err     error
	updated domain.User
}

func (f *fakeAPI) Login(context.Context, string, string) (domain.Session, error) {
	return f.session, f.err
}
func (f *fakeAPI) Register(context.Context, string, string, string) (domain.Session, error) {
	return f.session, f.err
}
func (f *fakeAPI) Me(context.Context) (domain.User, error) { return f.session.User, f.err }
func (f *fakeAPI) UpdateProfile(_ context.Context, user domain.User) (domain.User, error) {
	f.updated = user
	return user, f.err
}

type memStore struct {
	session domain.Session
	has     bool
	cleared bool
}

func (m *memStore) Save(_ context.Context, session domain.Session) error {
	m.session, m.has = session, true
	return nil
}

func (m *memStore) Load(context.Context) (domain.Session, error) {
	if !m.has {
		return domain.Session{}, apperrors.ErrNoSession
	}
	return m.session, nil
}

func (m *memStore) Clear(context.Context) error {
	m.session, m.has = domain.Session{}, false
	m.cleared = true
	return nil
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

var testNow = time.Date(2024, time.June, 12, 12, 0, 0, 0, time.UTC)

func TestLoginPersistsSession(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	api := &fakeAPI{session: domain.Session{Token: "tok", User: domain.User{Email: "an@example.com"}}}
	uc := usecase.NewInteractor(api, store, fixedClock{now: testNow}, quiet())

	session, err := uc.Login(context.Background(), "an@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !store.has || store.session.Token != "tok" {
		t.Fatalf("session not persisted")
	}
	if session.User.Email != "an@example.com" {
		t.Fatalf("session = %+v", session)
	}
}

func TestLoginFailureDoesNotPersist(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	uc := usecase.NewInteractor(&fakeAPI{err: errors.New("invalid credentials")}, store, fixedClock{now: testNow}, quiet())

	if _, err := uc.Login(context.Background(), "an@example.com", "bad"); err == nil {
		t.Fatalf("expected error")
	}
	if store.has {
		t.Fatalf("failed login must not persist a session")
	}
}

func TestCurrentReturnsStoredSession(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	store.Save(context.Background(), domain.Session{
		Token: signedToken(t, testNow.Add(time.Hour)),
		User:  domain.User{Name: "An"},
	})
	uc := usecase.NewInteractor(&fakeAPI{}, store, fixedClock{now: testNow}, quiet())

	session, err := uc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if session.User.Name != "An" {
		t.Fatalf("session = %+v", session)
	}
}

func TestCurrentClearsExpiredToken(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	store.Save(context.Background(), domain.Session{Token: signedToken(t, testNow.Add(-time.Minute))})
	uc := usecase.NewInteractor(&fakeAPI{}, store, fixedClock{now: testNow}, quiet())

	if _, err := uc.Current(context.Background()); !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}
	if !store.cleared {
		t.Fatalf("expired session must be cleared")
	}
}

func TestCurrentKeepsOpaqueToken(t *testing.T) {
	t.Parallel()
	// Tokens the client cannot parse are the server's to judge.
	store := &memStore{}
	store.Save(context.Background(), domain.Session{Token: "not-a-jwt"})
	uc := usecase.NewInteractor(&fakeAPI{}, store, fixedClock{now: testNow}, quiet())

	if _, err := uc.Current(context.Background()); err != nil {
		t.Fatalf("opaque token should be kept, got %v", err)
	}
}

func TestCurrentRefreshesProfileFromServer(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	store.Save(context.Background(), domain.Session{
		Token: signedToken(t, testNow.Add(time.Hour)),
		User:  domain.User{ID: "u1", Name: "Stale", WeightKg: 80},
	})
	api := &fakeAPI{session: domain.Session{User: domain.User{ID: "u1", Name: "Fresh", WeightKg: 78.5}}}
	uc := usecase.NewInteractor(api, store, fixedClock{now: testNow}, quiet())

	session, err := uc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if session.User.Name != "Fresh" || session.User.WeightKg != 78.5 {
		t.Fatalf("profile not refreshed: %+v", session.User)
	}
	if store.session.User.Name != "Fresh" {
		t.Fatalf("refreshed profile not persisted: %+v", store.session.User)
	}
}

func TestCurrentDropsRejectedToken(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	store.Save(context.Background(), domain.Session{Token: signedToken(t, testNow.Add(time.Hour))})
	uc := usecase.NewInteractor(&fakeAPI{err: apperrors.ErrUnauthorized}, store, fixedClock{now: testNow}, quiet())

	if _, err := uc.Current(context.Background()); !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}
}

func TestUpdateUserPersistsReturnedProfile(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	store.Save(context.Background(), domain.Session{Token: "tok", User: domain.User{Name: "Old"}})
	api := &fakeAPI{}
	uc := usecase.NewInteractor(api, store, fixedClock{now: testNow}, quiet())

	updated, err := uc.UpdateUser(context.Background(), domain.User{Name: "New", WeightKg: 71.5})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Name != "New" {
		t.Fatalf("updated = %+v", updated)
	}
	if store.session.User.WeightKg != 71.5 {
		t.Fatalf("profile not persisted: %+v", store.session.User)
	}
	if store.session.Token != "tok" {
		t.Fatalf("token lost on profile update")
	}
}
