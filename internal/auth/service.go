package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidToken       = errors.New("invalid session token")
)

// Claims is what a session token carries. The domain only ever consumes the
// boolean fact that a valid session exists; the role label rides along for
// the dashboard staff counts and UI hints.
type Claims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

type Service struct {
	repo       Repository
	secret     []byte
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewService(repo Repository, secret string, sessionTTL time.Duration, log zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		log:        log.With().Str("component", "auth").Logger(),
	}
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (in SignUpInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if in.Email == "" {
		return fmt.Errorf("%w: email", ErrMissingField)
	}
	if in.Password == "" {
		return fmt.Errorf("%w: password", ErrMissingField)
	}
	return nil
}

func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*User, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = RoleReceptionist
	}

	now := time.Now().UTC()

	user, err := s.repo.Create(ctx, User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Stringer("user_id", user.ID).Str("role", user.Role).Msg("user signed up")

	return user, token, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load user: %w", err)
	}
	if !user.Active {
		return nil, "", ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ListUsers feeds the dashboard staff counts.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Service) issueToken(u *User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: u.Role,
		Name: u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// ParseToken validates a session token and returns its claims.
func (s *Service) ParseToken(raw string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
