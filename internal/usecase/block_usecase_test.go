package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gormrepo "fleamarket/internal/adapter/repository"
	"fleamarket/internal/domain/entity"
	"fleamarket/pkg/errors"
)

func newBlockFixture(t *testing.T) (*BlockUseCase, *entity.User, *entity.User) {
	t.Helper()

	db, err := gormrepo.OpenDB(":memory:")
	require.NoError(t, err)

	userRepo := gormrepo.NewGormUserRepository(db)
	blockRepo := gormrepo.NewGormBlockRepository(db)

	ctx := context.Background()
	alice := &entity.User{Username: "alice", Nickname: "Alice", Password: "x"}
	require.NoError(t, userRepo.Create(ctx, alice))
	bob := &entity.User{Username: "bob", Nickname: "Bob", Password: "x"}
	require.NoError(t, userRepo.Create(ctx, bob))

	return NewBlockUseCase(blockRepo, userRepo), alice, bob
}

func TestBlockAndUnblock(t *testing.T) {
	uc, alice, bob := newBlockFixture(t)
	ctx := context.Background()

	block, err := uc.Block(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, block.BlockedUserID)

	blocks, err := uc.ListBlocked(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, blocks, 1)

	require.NoError(t, uc.Unblock(ctx, alice.ID, bob.ID))

	blocks, err = uc.ListBlocked(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestBlockValidation(t *testing.T) {
	uc, alice, bob := newBlockFixture(t)
	ctx := context.Background()

	_, err := uc.Block(ctx, alice.ID, alice.ID)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.Block(ctx, alice.ID, 9999)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, err = uc.Block(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = uc.Block(ctx, alice.ID, bob.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestUnblockWithoutBlockIsNotFound(t *testing.T) {
	uc, alice, bob := newBlockFixture(t)

	err := uc.Unblock(context.Background(), alice.ID, bob.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
