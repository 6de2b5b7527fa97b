package app

import (
	"net/http"

	"github.com/Rasouli77/ellenovastyle/pkg/e"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// JSON writes the envelope; the message comes from the error code table.
func JSON(c *gin.Context, httpCode, errCode int, data interface{}) {
	c.JSON(httpCode, Response{
		Code: errCode,
		Msg:  e.GetMsg(errCode),
		Data: data,
	})
}

// OK answers a successful request.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, e.SUCCESS, data)
}

// Fail answers with an error code and no data.
func Fail(c *gin.Context, httpCode, errCode int) {
	JSON(c, httpCode, errCode, nil)
}
