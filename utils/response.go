package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope every endpoint answers with. Code 0 means
// success; error codes are five digits, the first three matching the HTTP
// status.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes the envelope with an explicit HTTP status.
func Respond(ctx *gin.Context, status, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{Code: code, Message: message, Data: data})
}

// Success writes a 200 envelope around data.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, 0, "success", data)
}

// Error writes an error envelope with no data.
func Error(ctx *gin.Context, status, code int, message string) {
	Respond(ctx, status, code, message, nil)
}
