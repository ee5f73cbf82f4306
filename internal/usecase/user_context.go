package usecase

// UserContext はセッションから解決したログインユーザー。
// handlerが作ってusecaseに明示的に渡す。
type UserContext struct {
	UserID int64
}

func (uc UserContext) LoggedIn() bool {
	return uc.UserID > 0
}
