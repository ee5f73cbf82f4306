package validator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"storefront/internal/usecase"
)

// パスワード最低文字数
const minPasswordLen = 8

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, username string, email string, password string) error {
	// 必須チェック
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return invalid("username, email and password are required")
	}
	if len(username) > 80 {
		return invalid("username is too long")
	}
	// email形式
	if !isEmailLike(email) {
		return invalid("email format is invalid")
	}
	if len(password) < minPasswordLen {
		return invalid(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return invalid("username and password are required")
	}
	return nil
}

// 空の項目は変更なしなのでチェックしない
func (v *authValidator) ValidateProfileUpdate(ctx context.Context, username string, email string, password string) error {
	if len(username) > 80 {
		return invalid("username is too long")
	}
	if email != "" && !isEmailLike(email) {
		return invalid("email format is invalid")
	}
	if password != "" && len(password) < minPasswordLen {
		return invalid(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", usecase.ErrValidation, msg)
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}
