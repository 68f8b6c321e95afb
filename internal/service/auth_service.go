package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"football_assistance_backend/internal/config"
	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	ProfileRepo *repository.ProfileRepository
	TokenRepo   *repository.TokenRepository
	Cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, tokenRepo *repository.TokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		TokenRepo:   tokenRepo,
		Cfg:         cfg,
	}
}

// Register creates the account together with its profile row; the username is fixed from here on.
func (s *AuthService) Register(ctx context.Context, email, password, username string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := s.UserRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrEmailRegistered
	}
	taken, err := s.ProfileRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:       model.GenerateUUID(),
		Email:    email,
		Password: string(hashedPassword),
	}
	profile := &model.Profile{
		Username:   username,
		Theme:      model.ThemeLight,
		Strengths:  []string{},
		Weaknesses: []string{},
	}
	if err := s.UserRepo.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return "", util.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// Authenticate turns a bearer token into a session, rejecting revoked tokens.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*util.Session, error) {
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, errors.New("token without subject")
	}
	if claims.ID != "" {
		revoked, err := s.TokenRepo.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, util.ErrTokenRevoked
		}
	}
	return claims.Session(), nil
}

// Logout revokes the session's token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, session *util.Session) error {
	if session.TokenID == "" {
		return nil
	}
	return s.TokenRepo.Revoke(ctx, session.TokenID, time.Until(session.ExpiresAt))
}
