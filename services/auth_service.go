package services

import (
	"context"
	"errors"
	"time"

	"github.com/community-board/api-go/apperrors"
	"github.com/community-board/api-go/models"
	"github.com/community-board/api-go/repositories"
)

const tokenTypeBearer = "Bearer"

// GoogleAccountResolver exchanges an OAuth authorization code for the email
// of the Google account that granted it.
type GoogleAccountResolver interface {
	ResolveEmail(ctx context.Context, code string) (email string, verified bool, err error)
}

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GoogleLogin(ctx context.Context, code string) (*TokenPair, error)
}

type authService struct {
	store  repositories.Store
	hasher PasswordHasher
	tokens *TokenIssuer
	google GoogleAccountResolver
	now    func() time.Time
}

// NewAuthService wires the auth flows. google may be nil, in which case
// GoogleLogin is disabled.
func NewAuthService(store repositories.Store, hasher PasswordHasher, tokens *TokenIssuer, google GoogleAccountResolver) AuthService {
	return &authService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		google: google,
		now:    time.Now,
	}
}

func invalidCredentials() error {
	return apperrors.Unauthorized(CodeInvalidCredentials)
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	user, err := s.store.Users().FindByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, apperrors.Internal("load user", err)
	}
	if user.IsDeleted {
		return nil, invalidCredentials()
	}
	if err := s.hasher.Compare(user.Password, req.Password); err != nil {
		return nil, invalidCredentials()
	}

	var pair *TokenPair
	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		pair, err = s.issue(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a
// new pair is issued. Expired tokens are deleted and rejected.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(CodeInvalidToken)
	}

	stored, err := s.store.RefreshTokens().FindByToken(ctx, refreshToken)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.Unauthorized(CodeInvalidToken)
	}
	if err != nil {
		return nil, apperrors.Internal("load refresh token", err)
	}
	if stored.UserID != userID {
		return nil, apperrors.Unauthorized(CodeInvalidToken)
	}
	if stored.Expired(s.now()) {
		if err := s.store.RefreshTokens().Delete(ctx, stored); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Internal("delete refresh token", err)
		}
		return nil, apperrors.Unauthorized(CodeTokenExpired)
	}

	var pair *TokenPair
	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		user, err := tx.Users().FindByID(ctx, userID)
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.Unauthorized(CodeInvalidToken)
		}
		if err != nil {
			return apperrors.Internal("load user", err)
		}
		if user.IsDeleted {
			return apperrors.Unauthorized(CodeInvalidToken)
		}
		// a token rotated by a concurrent refresh is spent
		if err := tx.RefreshTokens().Delete(ctx, stored); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.Unauthorized(CodeInvalidToken)
			}
			return apperrors.Internal("delete refresh token", err)
		}
		pair, err = s.issue(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout forgets the refresh token. Unknown tokens are ignored.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.revoke(ctx, refreshToken)
}

// GoogleLogin signs in the existing account whose email matches the verified
// Google account. It never registers new users.
func (s *authService) GoogleLogin(ctx context.Context, code string) (*TokenPair, error) {
	if s.google == nil {
		return nil, apperrors.Validation(CodeGoogleDisabled, "google login is not configured")
	}
	email, verified, err := s.google.ResolveEmail(ctx, code)
	if err != nil {
		return nil, apperrors.Unauthorized(CodeInvalidCredentials)
	}
	if !verified {
		return nil, invalidCredentials()
	}

	user, err := s.store.Users().FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, apperrors.Internal("load user", err)
	}
	if user.IsDeleted {
		return nil, invalidCredentials()
	}

	var pair *TokenPair
	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		pair, err = s.issue(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *authService) issue(ctx context.Context, tx repositories.Store, user *models.User) (*TokenPair, error) {
	access, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, apperrors.Internal("sign access token", err)
	}
	refresh, expiresAt, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, apperrors.Internal("sign refresh token", err)
	}
	stored := &models.RefreshToken{
		UserID:         user.ID,
		Token:          refresh,
		ExpirationDate: expiresAt,
	}
	if err := tx.RefreshTokens().Create(ctx, stored); err != nil {
		return nil, apperrors.Internal("store refresh token", err)
	}
	return &TokenPair{
		AccessToken:      access,
		TokenType:        tokenTypeBearer,
		RefreshToken:     refresh,
		RefreshExpiresAt: expiresAt,
		User:             newUserResponse(user),
	}, nil
}

func (s *authService) revoke(ctx context.Context, refreshToken string) error {
	stored, err := s.store.RefreshTokens().FindByToken(ctx, refreshToken)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return apperrors.Internal("load refresh token", err)
	}
	if err := s.store.RefreshTokens().Delete(ctx, stored); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return apperrors.Internal("delete refresh token", err)
	}
	return nil
}
