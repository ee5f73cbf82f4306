package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// handlerがCookieに詰める値
type LoginResult struct {
	User      UserDTO
	Token     string
	ExpiresAt time.Time
}

type ProfileOutput struct {
	User      UserDTO      `json:"user"`
	Addresses []AddressDTO `json:"addresses"`
}

// 空の項目は変更しない
type UpdateProfileInput struct {
	Username string
	Email    string
	Password string
}

type AuthUsecase struct {
	tx        repo.TransactionManager
	validator AuthValidator
	hasher    PasswordHasher
	verifier  PasswordVerifier
	issuer    SessionIssuer
	clock     Clock
	log       Logger
}

func NewAuthUsecase(
	tx repo.TransactionManager,
	validator AuthValidator,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer SessionIssuer,
	clock Clock,
	log Logger,
) *AuthUsecase {
	return &AuthUsecase{
		tx:        tx,
		validator: validator,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
		log:       log,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserDTO, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in.Username, in.Email, in.Password); err != nil {
		return UserDTO{}, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserDTO{}, storageErr("hash password", err)
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: pwHash,
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Users().Create(ctx, user); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrConflict
			}
			return storageErr("create user", err)
		}
		return nil
	})
	if err != nil {
		return UserDTO{}, err
	}

	u.log.Infof("user registered user_id=%d", user.ID)
	return toUserDTO(user), nil
}

// ユーザー名違いもパスワード違いも同じエラー
func (u *AuthUsecase) Login(ctx context.Context, username string, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if err := u.validator.ValidateLogin(ctx, username, password); err != nil {
		return LoginResult{}, err
	}

	var user *model.User
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		found, err := r.Users().FindByUsername(ctx, username)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidCredentials
		}
		if err != nil {
			return storageErr("find user", err)
		}
		user = found
		return nil
	})
	if err != nil {
		return LoginResult{}, err
	}

	//パスワード照合（bcrypt）
	if !u.verifier.Verify(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, exp, err := u.issuer.Issue(user.ID, u.clock.Now())
	if err != nil {
		return LoginResult{}, storageErr("issue session", err)
	}

	return LoginResult{User: toUserDTO(user), Token: token, ExpiresAt: exp}, nil
}

func (u *AuthUsecase) Profile(ctx context.Context, uc UserContext) (ProfileOutput, error) {
	if !uc.LoggedIn() {
		return ProfileOutput{}, ErrUnauthorized
	}

	var out ProfileOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, uc.UserID)
		if err != nil {
			return notFoundOr("find user", err)
		}
		list, err := r.Addresses().ListByUserID(ctx, uc.UserID)
		if err != nil {
			return storageErr("list addresses", err)
		}

		addrs := make([]AddressDTO, 0, len(list))
		for i := range list {
			addrs = append(addrs, toAddressDTO(&list[i]))
		}
		out = ProfileOutput{User: toUserDTO(user), Addresses: addrs}
		return nil
	})
	if err != nil {
		return ProfileOutput{}, err
	}
	return out, nil
}

func (u *AuthUsecase) UpdateProfile(ctx context.Context, uc UserContext, in UpdateProfileInput) (UserDTO, error) {
	if !uc.LoggedIn() {
		return UserDTO{}, ErrUnauthorized
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := u.validator.ValidateProfileUpdate(ctx, in.Username, in.Email, in.Password); err != nil {
		return UserDTO{}, err
	}

	pwHash := ""
	if in.Password != "" {
		h, err := u.hasher.Hash(in.Password)
		if err != nil {
			return UserDTO{}, storageErr("hash password", err)
		}
		pwHash = h
	}

	var updated *model.User
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, uc.UserID)
		if err != nil {
			return notFoundOr("find user", err)
		}

		if in.Username != "" && in.Username != user.Username {
			other, err := r.Users().FindByUsername(ctx, in.Username)
			if err == nil && other.ID != user.ID {
				return ErrConflict
			}
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return storageErr("find user", err)
			}
			user.Username = in.Username
		}
		if in.Email != "" {
			user.Email = in.Email
		}
		if pwHash != "" {
			user.PasswordHash = pwHash
		}

		if err := r.Users().Update(ctx, user); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrConflict
			}
			return storageErr("update user", err)
		}
		updated = user
		return nil
	})
	if err != nil {
		return UserDTO{}, err
	}
	return toUserDTO(updated), nil
}

// 注文は残す。カート・ウィッシュリスト・住所・ユーザーを消す
func (u *AuthUsecase) DeleteAccount(ctx context.Context, uc UserContext) error {
	if !uc.LoggedIn() {
		return ErrUnauthorized
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Carts().DeleteByUserID(ctx, uc.UserID); err != nil {
			return storageErr("delete cart lines", err)
		}
		if err := r.Wishlists().DeleteByUserID(ctx, uc.UserID); err != nil {
			return storageErr("delete wishlist lines", err)
		}
		if err := r.Addresses().DeleteByUserID(ctx, uc.UserID); err != nil {
			return storageErr("delete addresses", err)
		}
		if err := r.Users().Delete(ctx, uc.UserID); err != nil {
			return notFoundOr("delete user", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.log.Infof("account deleted user_id=%d", uc.UserID)
	return nil
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{ID: u.ID, Username: u.Username, Email: u.Email}
}
