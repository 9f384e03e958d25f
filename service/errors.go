package service

import (
	"errors"
	"strconv"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUsernameNotFound   = errors.New("username not found")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrBanned             = errors.New("user is banned")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrInvalidID          = errors.New("invalid id")
)

// PlatformError 平台侧（数据库 / Redis / 存储）失败，带上操作名和原始信息
type PlatformError struct {
	Op  string
	Msg string
	Err error
}

func (e *PlatformError) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return e.Op + ": " + e.Msg
}

func (e *PlatformError) Unwrap() error { return e.Err }

// platformErr 包装成 *PlatformError；已经包装过的原样返回
func platformErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PlatformError
	if errors.As(err, &pe) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrNotFound
	}
	return &PlatformError{Op: op, Msg: err.Error(), Err: err}
}

func fmtID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func parseID(op, s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, &PlatformError{Op: op, Msg: ErrInvalidID.Error() + " " + strconv.Quote(s), Err: ErrInvalidID}
	}
	return id, nil
}
