package response

import (
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Response 所有接口统一的返回结构
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	ErrCode    int64       `json:"errCode,omitempty"`
}

// SendResponse pack response, http状态码由错误码决定
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	if err == nil {
		SendSuccess(c, consts.StatusOK, data, errno.Success.ErrMsg)
		return
	}
	Err := errno.ConvertErr(err)
	status := Err.HTTPStatus()
	if status >= consts.StatusInternalServerError {
		hlog.Errorf("request %s failed: %+v", c.FullPath(), err)
	}
	c.JSON(status, Response{
		StatusCode: status,
		Data:       nil,
		Message:    Err.ErrMsg,
		Success:    false,
		ErrCode:    Err.ErrCode,
	})
}

func SendSuccess(c *app.RequestContext, status int, data interface{}, message string) {
	c.JSON(status, Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// SendCreated 资源创建成功
func SendCreated(c *app.RequestContext, data interface{}, message string) {
	SendSuccess(c, consts.StatusCreated, data, message)
}
