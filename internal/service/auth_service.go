package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"go-course-tracker/internal/model"
	"go-course-tracker/internal/validation"
	"go-course-tracker/pkg/apierror"
)

// UserStore is the credential store the auth service runs against.
type UserStore interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	FindByLogin(ctx context.Context, identifier string) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	UpdateProfile(ctx context.Context, id int64, fields model.UpdateProfileRequest) (model.User, error)
}

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(users UserStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

type tokenClaims struct {
	model.AuthClaims
	jwt.RegisteredClaims
}

func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.PublicUser, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return model.PublicUser{}, apierror.New("BAD_REQUEST", "Username, email, and password are required", "", http.StatusBadRequest)
	}
	if err := validation.Struct(req); err != nil {
		return model.PublicUser{}, apierror.New("BAD_REQUEST", "Invalid signup payload", validation.FirstField(err), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameTaken):
			return model.PublicUser{}, apierror.New("CONFLICT", "Username already exists", "username", http.StatusBadRequest)
		case errors.Is(err, model.ErrEmailTaken):
			return model.PublicUser{}, apierror.New("CONFLICT", "Email already exists", "email", http.StatusBadRequest)
		}
		return model.PublicUser{}, err
	}

	return model.PublicUser{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	identifier := strings.TrimSpace(req.Identifier())
	if identifier == "" || req.Password == "" {
		return model.LoginResponse{}, apierror.New("BAD_REQUEST", "Username and password are required", "", http.StatusBadRequest)
	}

	user, err := s.users.FindByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Unknown user and wrong password must be indistinguishable.
			return model.LoginResponse{}, model.ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return model.LoginResponse{}, model.ErrInvalidCredentials
	}

	claims := user.Claims()
	token, err := s.issueToken(claims)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}

	return model.LoginResponse{Token: token, User: claims}, nil
}

// ValidateToken checks signature and expiry and returns the identity claims.
// Every failure mode collapses into the same opaque error so callers cannot
// tell a bad signature from an expired token.
func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid || claims.UserID == 0 {
		return nil, model.ErrInvalidToken
	}

	return &claims.AuthClaims, nil
}

// UserExists re-confirms the token subject still has an account. Tokens are
// stateless, so this is the only guard against tokens outliving deleted
// accounts.
func (s *AuthService) UserExists(ctx context.Context, userID int64) (bool, error) {
	return s.users.ExistsByID(ctx, userID)
}

func (s *AuthService) Profile(ctx context.Context, userID int64) (model.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}
	return user.Profile(), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (model.Profile, error) {
	if err := validation.Struct(req); err != nil {
		return model.Profile{}, apierror.New("BAD_REQUEST", "Invalid profile payload", validation.FirstField(err), http.StatusBadRequest)
	}

	user, err := s.users.UpdateProfile(ctx, userID, req)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return model.Profile{}, apierror.New("CONFLICT", "Email already in use by another account", "email", http.StatusBadRequest)
		}
		return model.Profile{}, err
	}

	return user.Profile(), nil
}

func (s *AuthService) issueToken(claims model.AuthClaims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		AuthClaims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})
	return token.SignedString(s.jwtSecret)
}
