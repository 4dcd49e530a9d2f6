package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fakeUserRepo struct {
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*User)}
}

func (r *fakeUserRepo) List(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u User) (*User, error) {
	key := strings.ToLower(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return nil, ErrEmailTaken
	}
	cp := u
	r.byEmail[key] = &cp
	return &cp, nil
}

func newTestAuthService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewService(repo, "test-secret", time.Hour, zerolog.Nop()), repo
}

func TestSignUpAndTokenRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService()

	user, token, err := svc.SignUp(context.Background(), SignUpInput{
		Name:     "Priya Nair",
		Email:    "priya@medware.test",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.Role != RoleReceptionist {
		t.Errorf("default role = %q, want receptionist", user.Role)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Error("password stored in clear")
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != user.ID.String() {
		t.Errorf("token subject = %q, want %q", claims.Subject, user.ID)
	}
	if claims.Role != RoleReceptionist || claims.Name != "Priya Nair" {
		t.Errorf("claims = %+v, want role and name carried over", claims)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	in := SignUpInput{Name: "A", Email: "dup@medware.test", Password: "pass1234"}
	if _, _, err := svc.SignUp(context.Background(), in); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	if _, _, err := svc.SignUp(context.Background(), in); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second SignUp = %v, want ErrEmailTaken", err)
	}
}

func TestSignIn(t *testing.T) {
	svc, repo := newTestAuthService()

	if _, _, err := svc.SignUp(context.Background(), SignUpInput{
		Name: "Dev", Email: "dev@medware.test", Password: "correct-horse",
	}); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := svc.SignIn(context.Background(), "dev@medware.test", "correct-horse")
		if err != nil {
			t.Fatalf("SignIn: %v", err)
		}
		if token == "" {
			t.Error("SignIn returned an empty token")
		}
		if user.Email != "dev@medware.test" {
			t.Errorf("user email = %q", user.Email)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, _, err := svc.SignIn(context.Background(), "dev@medware.test", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("SignIn = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		if _, _, err := svc.SignIn(context.Background(), "nobody@medware.test", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("SignIn = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("disabled account", func(t *testing.T) {
		repo.byEmail["dev@medware.test"].Active = false
		if _, _, err := svc.SignIn(context.Background(), "dev@medware.test", "correct-horse"); !errors.Is(err, ErrAccountDisabled) {
			t.Errorf("SignIn = %v, want ErrAccountDisabled", err)
		}
	})
}

func TestParseTokenRejectsForgedSignature(t *testing.T) {
	svc, _ := newTestAuthService()
	other := NewService(newFakeUserRepo(), "other-secret", time.Hour, zerolog.Nop())

	_, token, err := svc.SignUp(context.Background(), SignUpInput{
		Name: "X", Email: "x@medware.test", Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, err := other.ParseToken(token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}
