package pixelheart

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cydxin/pixelheart-sdk/response"
	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// 最多三套精选
const maxFeaturedSets = 3

var (
	errForbidden     = errors.New("administrator access required")
	errNotAuthor     = errors.New("only the author or an administrator can delete this")
	errFeaturedLimit = errors.New("you can only feature up to 3 sets")
	errAdminAccount  = errors.New("administrator accounts cannot be deleted")
	errEmailMismatch = errors.New("email does not match")
)

// errorCode 服务层错误 -> 业务状态码
func errorCode(err error) int {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr), errors.Is(err, service.ErrInvalidID):
		return response.CodeParamError
	case errors.Is(err, service.ErrNotFound):
		return response.CodeNotFound
	case errors.Is(err, service.ErrUsernameNotFound):
		return response.CodeUserNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return response.CodePasswordError
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
		return response.CodeConflict
	case errors.Is(err, service.ErrBanned):
		return response.CodeUserBanned
	case errors.Is(err, service.ErrNotSignedIn):
		return response.CodeTokenInvalid
	case errors.Is(err, errForbidden), errors.Is(err, errNotAuthor), errors.Is(err, errAdminAccount):
		return response.CodePermissionDeny
	case errors.Is(err, errEmailMismatch):
		return response.CodeParamError
	case errors.Is(err, errFeaturedLimit):
		return response.CodeFeaturedLimit
	}
	return response.CodeInternalError
}

// fail 业务错误统一 HTTP 200 + 业务码；内部错误记日志
func (e *Engine) fail(ctx *gin.Context, err error) {
	code := errorCode(err)
	if code == response.CodeInternalError {
		e.log.Error().Err(err).Str("path", ctx.FullPath()).Msg("request failed")
	}
	ctx.JSON(http.StatusOK, response.Error(code, err.Error()))
}

// bindJSON 解析并校验请求体，失败时已写好响应
func bindJSON(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return false
	}
	if v, ok := req.(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
			return false
		}
	}
	return true
}

var trimmedRequired = validation.By(func(v any) error {
	if s, _ := v.(string); strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// -------------------- 请求体 --------------------

type signUpReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Dob      string `json:"dob" example:"2000-01-31"`
}

func (r signUpReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, trimmedRequired),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Dob, validation.Required, validation.Date("2006-01-02")),
	)
}

type loginReq struct {
	// Identifier 用户名或邮箱
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r loginReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, trimmedRequired),
		validation.Field(&r.Password, validation.Required),
	)
}

// setReq 照片带 id 表示已有照片，不带表示新照片
type setReq struct {
	service.SetDraft
}

func (r setReq) Validate() error {
	return validation.Errors{
		"character":  validation.Validate(r.Character, trimmedRequired),
		"series":     validation.Validate(r.Series, trimmedRequired),
		"coverImage": validation.Validate(r.CoverImage, trimmedRequired),
	}.Filter()
}

type seriesReq struct {
	Name string `json:"name"`
}

func (r seriesReq) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.Name, trimmedRequired))
}

type textReq struct {
	Text string `json:"text"`
}

func (r textReq) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.Text, trimmedRequired))
}

type deleteAccountReq struct {
	// Email 确认用，必须与当前账号邮箱一致
	Email string `json:"email"`
}

func (r deleteAccountReq) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.Email, validation.Required, is.EmailFormat))
}
