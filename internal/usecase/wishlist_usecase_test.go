package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/repository/repotest"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWishlistAdd_ExistingLineIsNoop(t *testing.T) {
	repos := repotest.NewRepos()
	uc := usecase.NewWishlistUsecase(repotest.NewTxManager(repos))

	repos.ProductRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Product{ID: 100}, nil)
	repos.WishlistRepo.On("Add", mock.Anything, int64(1), int64(100)).Return(false, nil)

	created, err := uc.Add(context.Background(), usecase.UserContext{UserID: 1}, 100)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestWishlistAdd_UnknownProduct(t *testing.T) {
	repos := repotest.NewRepos()
	uc := usecase.NewWishlistUsecase(repotest.NewTxManager(repos))

	repos.ProductRepo.On("FindByID", mock.Anything, int64(404)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Add(context.Background(), usecase.UserContext{UserID: 1}, 404)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	repos.WishlistRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestWishlistRemove_MissingLine(t *testing.T) {
	repos := repotest.NewRepos()
	uc := usecase.NewWishlistUsecase(repotest.NewTxManager(repos))

	repos.WishlistRepo.On("Remove", mock.Anything, int64(1), int64(100)).Return(false, nil)

	removed, err := uc.Remove(context.Background(), usecase.UserContext{UserID: 1}, 100)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestWishlistView_SkipsDeletedProducts(t *testing.T) {
	repos := repotest.NewRepos()
	uc := usecase.NewWishlistUsecase(repotest.NewTxManager(repos))

	repos.WishlistRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.WishlistLine{
		{ID: 1, ProductID: 100, Product: model.Product{ID: 100, Name: "A"}},
		{ID: 2, ProductID: 200},
	}, nil)

	items, err := uc.View(context.Background(), usecase.UserContext{UserID: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Name)
}
