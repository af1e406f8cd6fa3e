package errno

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

const (
	SuccessCode            = 0
	ServiceErrCode         = 10001
	ParamErrCode           = 10002
	AuthenticationErrCode  = 10003
	AuthorizationErrCode   = 10004
	NotFoundErrCode        = 10005
	ConflictErrCode        = 10006
	DependencyErrCode      = 10007
	TooManyRequestsErrCode = 10008
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// Is 只比较错误码, 使得WithMessage之后的错误仍能与基础错误匹配
func (e ErrNo) Is(target error) bool {
	t, ok := target.(ErrNo)
	if !ok {
		return false
	}
	return e.ErrCode == t.ErrCode
}

// HTTPStatus 错误码对应的http状态码
func (e ErrNo) HTTPStatus() int {
	switch e.ErrCode {
	case SuccessCode:
		return http.StatusOK
	case ParamErrCode:
		return http.StatusBadRequest
	case AuthenticationErrCode:
		return http.StatusUnauthorized
	case AuthorizationErrCode:
		return http.StatusForbidden
	case NotFoundErrCode:
		return http.StatusNotFound
	case ConflictErrCode:
		return http.StatusConflict
	case DependencyErrCode:
		return http.StatusBadGateway
	case TooManyRequestsErrCode:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

var (
	Success            = NewErrNo(SuccessCode, "Success")
	ServiceErr         = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	ParamErr           = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	AuthenticationErr  = NewErrNo(AuthenticationErrCode, "Unauthorized request")
	AuthorizationErr   = NewErrNo(AuthorizationErrCode, "You are not allowed to perform this action")
	NotFoundErr        = NewErrNo(NotFoundErrCode, "Resource not found")
	ConflictErr        = NewErrNo(ConflictErrCode, "Resource already exists")
	DependencyErr      = NewErrNo(DependencyErrCode, "Upstream dependency failed")
	TooManyRequestsErr = NewErrNo(TooManyRequestsErrCode, "Too many requests")

	UserNotExistErr    = NotFoundErr.WithMessage("User does not exist")
	VideoNotExistErr   = NotFoundErr.WithMessage("Video not found")
	CommentNotExistErr = NotFoundErr.WithMessage("Comment not found")
	TweetNotExistErr   = NotFoundErr.WithMessage("Tweet not found")
	PlaylistNotExist   = NotFoundErr.WithMessage("Playlist not found")
	UserAlreadyExist   = ConflictErr.WithMessage("User with email or username already exists")
	PasswordIsNotMatch = AuthenticationErr.WithMessage("Invalid user credentials")
	TokenInvalidErr    = AuthenticationErr.WithMessage("Invalid or expired token")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}

	s := ServiceErr
	s.ErrMsg = err.Error()
	return s
}
