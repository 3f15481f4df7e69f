package services

import (
	"context"
	"errors"
	"strings"

	"github.com/community-board/api-go/apperrors"
	"github.com/community-board/api-go/models"
	"github.com/community-board/api-go/repositories"
)

type UserService interface {
	Create(ctx context.Context, req SignUpRequest) (uint, error)
	GetMe(ctx context.Context, actorID string) (*UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest, actorID string) (*UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest, actorID string) error
	Delete(ctx context.Context, actorID string) error
	CheckEmail(ctx context.Context, email string) (bool, error)
	CheckNickname(ctx context.Context, nickname string) (bool, error)
}

type userService struct {
	store  repositories.Store
	hasher PasswordHasher
}

func NewUserService(store repositories.Store, hasher PasswordHasher) UserService {
	return &userService{store: store, hasher: hasher}
}

func duplicatedEmail() error {
	return apperrors.Duplicated(CodeUserConflict, "email", "email already in use")
}

func duplicatedNickname() error {
	return apperrors.Duplicated(CodeUserConflict, "nickname", "nickname already in use")
}

// checkUnique fails with Duplicated when email, then nickname, belongs to
// a user other than self. The nickname is not looked at once the email
// already conflicts. self is 0 for registrations.
func checkUnique(ctx context.Context, users repositories.UserRepository, email, nickname string, self uint) error {
	existing, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != self:
		return duplicatedEmail()
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return apperrors.Internal("check email", err)
	}

	existing, err = users.FindByNickname(ctx, nickname)
	switch {
	case err == nil && existing.ID != self:
		return duplicatedNickname()
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return apperrors.Internal("check nickname", err)
	}
	return nil
}

// fromDuplicate maps a unique violation raced past checkUnique onto the
// field named by the violated constraint.
func fromDuplicate(err error) error {
	if strings.Contains(err.Error(), "nickname") {
		return duplicatedNickname()
	}
	return duplicatedEmail()
}

func (s *userService) Create(ctx context.Context, req SignUpRequest) (uint, error) {
	var userID uint
	err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		if err := checkUnique(ctx, tx.Users(), req.Email, req.Nickname, 0); err != nil {
			return err
		}

		hashed, err := s.hasher.Hash(req.Password)
		if err != nil {
			return apperrors.Internal("hash password", err)
		}

		user := &models.User{
			Email:           req.Email,
			Nickname:        req.Nickname,
			Password:        hashed,
			ProfileImageURL: req.ProfileImageURL,
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return fromDuplicate(err)
			}
			return apperrors.Internal("create user", err)
		}
		userID = user.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func (s *userService) GetMe(ctx context.Context, actorID string) (*UserResponse, error) {
	user, err := findActor(ctx, s.store.Users(), actorID)
	if err != nil {
		return nil, err
	}
	resp := newUserResponse(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, req UpdateUserRequest, actorID string) (*UserResponse, error) {
	var resp UserResponse
	err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		user, err := findActor(ctx, tx.Users(), actorID)
		if err != nil {
			return err
		}
		if err := checkUnique(ctx, tx.Users(), req.Email, req.Nickname, user.ID); err != nil {
			return err
		}

		user.UpdateProfile(req.Email, req.Nickname, req.ProfileImageURL)
		if err := tx.Users().Save(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return fromDuplicate(err)
			}
			return apperrors.Internal("update user", err)
		}
		resp = newUserResponse(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *userService) ChangePassword(ctx context.Context, req ChangePasswordRequest, actorID string) error {
	return s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		user, err := findActor(ctx, tx.Users(), actorID)
		if err != nil {
			return err
		}
		if err := s.hasher.Compare(user.Password, req.CurrentPassword); err != nil {
			return apperrors.Validation(CodeInvalidPassword, "current password does not match")
		}

		hashed, err := s.hasher.Hash(req.NewPassword)
		if err != nil {
			return apperrors.Internal("hash password", err)
		}
		user.Password = hashed
		if err := tx.Users().Save(ctx, user); err != nil {
			return apperrors.Internal("update password", err)
		}
		// Sessions issued with the old password end here.
		if err := tx.RefreshTokens().DeleteByUser(ctx, user.ID); err != nil {
			return apperrors.Internal("revoke refresh tokens", err)
		}
		return nil
	})
}

// Delete soft-deletes the acting user. Authored posts, comments and likes
// stay in place.
func (s *userService) Delete(ctx context.Context, actorID string) error {
	return s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		user, err := findActor(ctx, tx.Users(), actorID)
		if err != nil {
			return err
		}
		user.SoftDelete()
		if err := tx.Users().Save(ctx, user); err != nil {
			return apperrors.Internal("delete user", err)
		}
		if err := tx.RefreshTokens().DeleteByUser(ctx, user.ID); err != nil {
			return apperrors.Internal("revoke refresh tokens", err)
		}
		return nil
	})
}

func (s *userService) CheckEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.store.Users().FindByEmail(ctx, email)
	return available(err)
}

func (s *userService) CheckNickname(ctx context.Context, nickname string) (bool, error) {
	_, err := s.store.Users().FindByNickname(ctx, nickname)
	return available(err)
}

func available(lookupErr error) (bool, error) {
	switch {
	case lookupErr == nil:
		return false, nil
	case errors.Is(lookupErr, repositories.ErrNotFound):
		return true, nil
	default:
		return false, apperrors.Internal("check availability", lookupErr)
	}
}
