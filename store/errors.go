package store

import (
	"errors"
	"strings"

	"github.com/cydxin/pixelheart-sdk/service"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const maxFeatured = 3

var (
	// ErrForbidden 需要管理员权限
	ErrForbidden = errors.New("administrator access required")
	// ErrFeaturedLimit 精选套图已满
	ErrFeaturedLimit = errors.New("you can only feature up to 3 sets")
	// ErrTimeout 写操作超时
	ErrTimeout = errors.New("Operation timed out. Please keep the tab open while saving.")
	// ErrNotSignedIn 未登录
	ErrNotSignedIn = errors.New("not signed in")
	// ErrAdminAccount 管理员账号不能自助注销
	ErrAdminAccount = errors.New("administrator accounts cannot be deleted")
	// ErrEmailMismatch 注销确认邮箱不一致
	ErrEmailMismatch = errors.New("email does not match")
)

// ValidationError 表单校验失败，未发起任何网关调用
type ValidationError struct {
	Op  string
	Err error
}

func (e *ValidationError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Fields 按字段返回错误信息，便于表单内联展示
func (e *ValidationError) Fields() map[string]string {
	out := map[string]string{}
	var errs validation.Errors
	if errors.As(e.Err, &errs) {
		for k, v := range errs {
			out[k] = v.Error()
		}
	}
	return out
}

func invalid(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Op: op, Err: err}
}

// --- 表单校验 ---

var notBlank = validation.By(func(v any) error {
	if s, _ := v.(string); strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

func validateSetDraft(d service.SetDraft) error {
	return invalid("save set", validation.Errors{
		"character":  validation.Validate(d.Character, notBlank),
		"series":     validation.Validate(d.Series, notBlank),
		"coverImage": validation.Validate(d.CoverImage, notBlank),
	}.Filter())
}

func validateSignUp(req service.SignUpReq) error {
	return invalid("sign up", validation.Errors{
		"username": validation.Validate(req.Username, notBlank),
		"email":    validation.Validate(strings.TrimSpace(req.Email), validation.Required, is.EmailFormat),
		"password": validation.Validate(req.Password, validation.Required),
		"dob":      validation.Validate(req.Dob, validation.Required, validation.Date("2006-01-02")),
	}.Filter())
}

func validateLogin(identifier, password string) error {
	return invalid("sign in", validation.Errors{
		"identifier": validation.Validate(identifier, notBlank),
		"password":   validation.Validate(password, validation.Required),
	}.Filter())
}

func validateText(op, field, text string) error {
	return invalid(op, validation.Errors{
		field: validation.Validate(text, notBlank),
	}.Filter())
}
