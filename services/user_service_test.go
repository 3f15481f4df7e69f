package services

import (
	"context"
	"errors"
	"testing"

	"github.com/community-board/api-go/apperrors"
	"github.com/community-board/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func signUp(email, nickname string) SignUpRequest {
	return SignUpRequest{Email: email, Password: "Secret1!", Nickname: nickname}
}

func duplicatedField(t *testing.T, err error) string {
	t.Helper()
	assertAppError(t, err, apperrors.KindDuplicated, CodeUserConflict)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	return appErr.Field
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	store := newFakeStore()
	hasher := new(mockHasher)
	hasher.On("Hash", "Secret1!").Return("bcrypt-hash", nil).Once()
	svc := NewUserService(store, hasher)

	id, err := svc.Create(context.Background(), signUp("a@x.com", "alice"))
	require.NoError(t, err)

	stored := store.db.users[id]
	assert.Equal(t, "bcrypt-hash", stored.Password)
	assert.Equal(t, "alice", stored.Nickname)
	assert.False(t, stored.IsDeleted)
	hasher.AssertExpectations(t)
}

func TestUserService_CreateDuplicates(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	hasher := new(mockHasher)
	svc := NewUserService(store, hasher)
	store.addUser("a@x.com", "alice")

	t.Run("same email", func(t *testing.T) {
		_, err := svc.Create(ctx, signUp("a@x.com", "someone"))
		assert.Equal(t, "email", duplicatedField(t, err))
	})

	t.Run("email wins over nickname", func(t *testing.T) {
		_, err := svc.Create(ctx, signUp("a@x.com", "alice"))
		assert.Equal(t, "email", duplicatedField(t, err))
	})

	t.Run("same nickname", func(t *testing.T) {
		_, err := svc.Create(ctx, signUp("new@x.com", "alice"))
		assert.Equal(t, "nickname", duplicatedField(t, err))
	})

	t.Run("race past the checks", func(t *testing.T) {
		store.db.skip["users.FindByNickname"] = true
		defer delete(store.db.skip, "users.FindByNickname")
		hasher.On("Hash", "Secret1!").Return("h", nil).Once()

		_, err := svc.Create(ctx, signUp("new@x.com", "alice"))
		assert.Equal(t, "nickname", duplicatedField(t, err))
	})

	assert.Len(t, store.db.users, 1)
	hasher.AssertExpectations(t)
}

func TestUserService_CreateTwiceWithSameEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeStore(), fakeHasher{})

	_, err := svc.Create(ctx, signUp("a@x.com", "first"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, signUp("a@x.com", "second"))
	assert.Equal(t, "email", duplicatedField(t, err))
}

func TestUserService_CreateHashFailure(t *testing.T) {
	store := newFakeStore()
	hasher := new(mockHasher)
	hasher.On("Hash", mock.Anything).Return("", errors.New("cost too high"))

	_, err := NewUserService(store, hasher).Create(context.Background(), signUp("a@x.com", "alice"))
	assertAppError(t, err, apperrors.KindInternal, "INTERNAL_SERVER_ERROR")
	assert.Empty(t, store.db.users)
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	alice := store.addUser("a@x.com", "alice")
	store.addUser("b@x.com", "bob")
	svc := NewUserService(store, fakeHasher{})
	img := "https://img/me.png"

	t.Run("keeping own email and nickname is not a conflict", func(t *testing.T) {
		resp, err := svc.Update(ctx, UpdateUserRequest{Email: "a@x.com", Nickname: "alice", ProfileImageURL: &img}, actor(alice.ID))
		require.NoError(t, err)
		assert.Equal(t, &img, resp.ProfileImageURL)
	})

	t.Run("taking another user's nickname", func(t *testing.T) {
		_, err := svc.Update(ctx, UpdateUserRequest{Email: "a@x.com", Nickname: "bob"}, actor(alice.ID))
		assert.Equal(t, "nickname", duplicatedField(t, err))
		assert.Equal(t, "alice", store.db.users[alice.ID].Nickname)
	})

	t.Run("taking another user's email", func(t *testing.T) {
		_, err := svc.Update(ctx, UpdateUserRequest{Email: "b@x.com", Nickname: "alice2"}, actor(alice.ID))
		assert.Equal(t, "email", duplicatedField(t, err))
	})

	t.Run("new values", func(t *testing.T) {
		resp, err := svc.Update(ctx, UpdateUserRequest{Email: "alice@x.com", Nickname: "ally"}, actor(alice.ID))
		require.NoError(t, err)
		assert.Equal(t, "ally", resp.Nickname)
		assert.Equal(t, "alice@x.com", store.db.users[alice.ID].Email)
		assert.Nil(t, store.db.users[alice.ID].ProfileImageURL)
	})

	t.Run("unknown actor", func(t *testing.T) {
		_, err := svc.Update(ctx, UpdateUserRequest{Email: "z@x.com", Nickname: "z"}, actor(999))
		assertAppError(t, err, apperrors.KindNotFound, CodeUserNotFound)
	})
}

func TestUserService_DeleteIsSoft(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	alice := store.addUser("a@x.com", "alice")
	post := store.addPost(alice.ID, "post")
	store.db.tokens[100] = models.RefreshToken{ID: 100, UserID: alice.ID, Token: "t"}
	svc := NewUserService(store, fakeHasher{})

	require.NoError(t, svc.Delete(ctx, actor(alice.ID)))

	stored, ok := store.db.users[alice.ID]
	require.True(t, ok)
	assert.True(t, stored.IsDeleted)
	assert.Contains(t, store.db.posts, post.ID)
	assert.Zero(t, fakeTokens{store.db}.countFor(alice.ID))

	// ownership still resolves against the soft-deleted author
	view, err := newTestPostService(store).GetByID(ctx, post.ID, actor(alice.ID))
	require.NoError(t, err)
	assert.True(t, view.IsAuthor)
	assert.True(t, view.Author.IsDeleted)
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	alice := store.addUser("a@x.com", "alice")
	store.db.tokens[100] = models.RefreshToken{ID: 100, UserID: alice.ID, Token: "t"}
	svc := NewUserService(store, fakeHasher{})

	err := svc.ChangePassword(ctx, ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "Newpass1!"}, actor(alice.ID))
	assertAppError(t, err, apperrors.KindValidation, CodeInvalidPassword)
	assert.Equal(t, 1, fakeTokens{store.db}.countFor(alice.ID))

	require.NoError(t, svc.ChangePassword(ctx, ChangePasswordRequest{CurrentPassword: "Secret1!", NewPassword: "Newpass1!"}, actor(alice.ID)))
	assert.Equal(t, "hashed:Newpass1!", store.db.users[alice.ID].Password)
	assert.Zero(t, fakeTokens{store.db}.countFor(alice.ID))
}

func TestUserService_GetMeAndAvailability(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	alice := store.addUser("a@x.com", "alice")
	svc := NewUserService(store, fakeHasher{})

	me, err := svc.GetMe(ctx, actor(alice.ID))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", me.Email)

	ok, err := svc.CheckEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CheckEmail(ctx, "free@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckNickname(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	store.db.fail["users.FindByEmail"] = errors.New("connection reset")
	_, err = svc.CheckEmail(ctx, "x@x.com")
	assertAppError(t, err, apperrors.KindInternal, "INTERNAL_SERVER_ERROR")
}
