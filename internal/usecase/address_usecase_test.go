package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/repository/repotest"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddressAdd_RequiresAllFields(t *testing.T) {
	repos := repotest.NewRepos()
	uc := usecase.NewAddressUsecase(repotest.NewTxManager(repos))

	_, err := uc.Add(context.Background(), usecase.UserContext{UserID: 1}, usecase.AddressCreateRequest{
		AddressLine: "1 Main St", City: "Springfield", State: "",
		PostalCode: "12345",
	})
	assert.ErrorIs(t, err, usecase.ErrValidation)
	repos.AddressRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddressAdd_OK(t *testing.T) {
	repos := repotest.NewRepos()
	uc := usecase.NewAddressUsecase(repotest.NewTxManager(repos))

	repos.AddressRepo.On("Create", mock.Anything, mock.MatchedBy(func(a model.Address) bool {
		return a.UserID == 1 && a.City == "Springfield"
	})).Return(model.Address{ID: 9, UserID: 1, City: "Springfield"}, nil)

	out, err := uc.Add(context.Background(), usecase.UserContext{UserID: 1}, usecase.AddressCreateRequest{
		AddressLine: "1 Main St", City: " Springfield ", State: "IL", PostalCode: "12345",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), out.ID)
}

func TestAddressDelete_OtherUsersAddressIsNotFound(t *testing.T) {
	repos := repotest.NewRepos()
	uc := usecase.NewAddressUsecase(repotest.NewTxManager(repos))

	repos.AddressRepo.On("FindByID", mock.Anything, int64(9)).Return(model.Address{ID: 9, UserID: 2}, nil)

	err := uc.Delete(context.Background(), usecase.UserContext{UserID: 1}, 9)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	repos.AddressRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAddressDelete_Own(t *testing.T) {
	repos := repotest.NewRepos()
	uc := usecase.NewAddressUsecase(repotest.NewTxManager(repos))

	repos.AddressRepo.On("FindByID", mock.Anything, int64(9)).Return(model.Address{ID: 9, UserID: 1}, nil)
	repos.AddressRepo.On("Delete", mock.Anything, int64(9)).Return(nil)

	require.NoError(t, uc.Delete(context.Background(), usecase.UserContext{UserID: 1}, 9))
}
