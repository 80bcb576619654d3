package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error envelope. Detail is safe to show to a teacher.
type ErrorBody struct {
	Detail    string `json:"detail"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Error codes.
const (
	CodeInvalidRequest   = "invalid_request"
	CodeGenerationFailed = "generation_failed"
	CodePDFFailed        = "pdf_failed"
)

// RespondError aborts the request with an error envelope.
func RespondError(c *gin.Context, status int, code, detail string) {
	c.AbortWithStatusJSON(status, ErrorBody{
		Detail:    detail,
		Code:      code,
		RequestID: c.GetString(requestIDKey),
	})
}

// RespondOK writes payload as JSON with status 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
