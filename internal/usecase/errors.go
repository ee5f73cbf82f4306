package usecase

import (
	"errors"
	"fmt"

	repo "storefront/internal/repository"
)

var (
	// カートが空（注文は作らない）
	ErrEmptyCart = errors.New("cart is empty")
	// 404 他人の持ち物もこれにする
	ErrNotFound = errors.New("not found")
	// 401
	ErrUnauthorized = errors.New("unauthorized")
	// 400 入力不正
	ErrValidation = errors.New("validation error")
	// 一意制約の競合
	ErrConflict = errors.New("conflict")
	// ユーザー名またはパスワードが違う
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// StorageError はrepository層の失敗。Txの中で返るとrollbackされる。
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// repo.ErrNotFoundだけErrNotFoundに、それ以外はStorageErrorに
func notFoundOr(op string, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return storageErr(op, err)
}

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
