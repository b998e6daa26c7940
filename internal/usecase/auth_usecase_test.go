package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gormrepo "fleamarket/internal/adapter/repository"
	"fleamarket/pkg/errors"
)

func newAuthFixture(t *testing.T) *AuthUseCase {
	t.Helper()

	db, err := gormrepo.OpenDB(":memory:")
	require.NoError(t, err)

	return NewAuthUseCase(gormrepo.NewGormUserRepository(db), "test-secret", 3600)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, RegisterInput{
		Username: "jihye",
		Password: "correct horse",
		Nickname: "Jihye",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.NotEqual(t, "correct horse", registered.User.Password, "password must be stored hashed")

	result, err := auth.Login(ctx, "jihye", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)

	userID, err := auth.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, RegisterInput{Username: "jihye", Password: "pw123456", Nickname: "Jihye"})
	require.NoError(t, err)

	_, err = auth.Register(ctx, RegisterInput{Username: "jihye", Password: "other pw", Nickname: "Imposter"})
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, RegisterInput{Username: "jihye", Password: "pw123456", Nickname: "Jihye"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, "jihye", "wrong")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	_, err = auth.Login(ctx, "nobody", "pw123456")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestUpdateProfile(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, RegisterInput{Username: "jihye", Password: "pw123456", Nickname: "Jihye"})
	require.NoError(t, err)

	updated, err := auth.UpdateProfile(ctx, registered.User.ID, UpdateProfileInput{Nickname: "Jay"})
	require.NoError(t, err)
	assert.Equal(t, "Jay", updated.Nickname)

	// Empty fields are left untouched.
	updated, err = auth.UpdateProfile(ctx, registered.User.ID, UpdateProfileInput{ProfileImage: "https://img.example/1.png"})
	require.NoError(t, err)
	assert.Equal(t, "Jay", updated.Nickname)
	assert.Equal(t, "https://img.example/1.png", updated.ProfileImage)

	_, err = auth.UpdateProfile(ctx, 9999, UpdateProfileInput{Nickname: "ghost"})
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	auth := newAuthFixture(t)

	_, err := auth.VerifyToken("not-a-token")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestVerifyTokenRejectsForeignSecret(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, RegisterInput{Username: "jihye", Password: "pw123456", Nickname: "Jihye"})
	require.NoError(t, err)

	db, err := gormrepo.OpenDB(":memory:")
	require.NoError(t, err)
	other := NewAuthUseCase(gormrepo.NewGormUserRepository(db), "different-secret", 3600)

	_, err = other.VerifyToken(registered.Token)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}
