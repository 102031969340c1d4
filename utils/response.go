package utils

import "github.com/gin-gonic/gin"

// JSONResponse is the uniform body shape: the numeric code mirrors the HTTP
// status, message is for humans, and error carries a tracking tag on server
// failures.
type JSONResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MsgServerError is the only message a client ever sees for an unexpected
// failure; the detail went to the operator.
const MsgServerError = "We faced a problem in our server and our developers have been notified of this problem. Please try again later."

// Message writes a status code with a human-readable message.
func Message(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, JSONResponse{Code: status, Message: message})
}

// ServerError writes the uniform 500 body carrying only a tracking tag.
func ServerError(ctx *gin.Context, tag string) {
	ctx.JSON(500, JSONResponse{Code: 500, Message: MsgServerError, Error: tag})
}
