package usecase

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type AddressDTO struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	CreatedAt   string `json:"created_at"`
}

type AddressCreateRequest struct {
	AddressLine string
	City        string
	State       string
	PostalCode  string
}

type AddressUsecase struct {
	tx repo.TransactionManager
}

func NewAddressUsecase(tx repo.TransactionManager) *AddressUsecase {
	return &AddressUsecase{tx: tx}
}

func (u *AddressUsecase) Add(ctx context.Context, uc UserContext, req AddressCreateRequest) (AddressDTO, error) {
	if !uc.LoggedIn() {
		return AddressDTO{}, ErrUnauthorized
	}

	a := model.Address{
		UserID:      uc.UserID,
		AddressLine: strings.TrimSpace(req.AddressLine),
		City:        strings.TrimSpace(req.City),
		State:       strings.TrimSpace(req.State),
		PostalCode:  strings.TrimSpace(req.PostalCode),
	}

	//入力チェック
	if a.AddressLine == "" || a.City == "" || a.State == "" || a.PostalCode == "" {
		return AddressDTO{}, validationErr("all address fields are required")
	}

	var created model.Address
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		out, err := r.Addresses().Create(ctx, a)
		if err != nil {
			return storageErr("create address", err)
		}
		created = out
		return nil
	})
	if err != nil {
		return AddressDTO{}, err
	}
	return toAddressDTO(&created), nil
}

// 他人の住所は存在しない扱い
func (u *AddressUsecase) Delete(ctx context.Context, uc UserContext, addressID int64) error {
	if !uc.LoggedIn() {
		return ErrUnauthorized
	}
	if addressID <= 0 {
		return ErrNotFound
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		a, err := r.Addresses().FindByID(ctx, addressID)
		if err != nil {
			return notFoundOr("find address", err)
		}
		if a.UserID != uc.UserID {
			return ErrNotFound
		}
		if err := r.Addresses().Delete(ctx, addressID); err != nil {
			return notFoundOr("delete address", err)
		}
		return nil
	})
}

func toAddressDTO(a *model.Address) AddressDTO {
	return AddressDTO{
		ID:          a.ID,
		UserID:      a.UserID,
		AddressLine: a.AddressLine,
		City:        a.City,
		State:       a.State,
		PostalCode:  a.PostalCode,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}
