package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketapp/internal/shared/constants"
	"ticketapp/internal/shared/errors"
)

// APIResponse is the envelope every JSON endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{Success: true, Data: data, Message: message})
}

// CreatedResponse answers 201; message defaults to "Created".
func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	msg := "Created"
	if len(message) > 0 {
		msg = message[0]
	}
	SuccessResponse(c, http.StatusCreated, msg, data)
}

// ErrorResponse answers with a bare message. Used by middleware that rejects
// a request before any use case runs.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	writeError(c, errors.New(errors.TypeForStatus(statusCode), message))
}

// ErrorResponseWithError answers with the AppError in err's chain. Other
// errors become a generic 500 so storage details never reach the client.
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(errors.OrInternal(err, constants.ErrMsgInternalServerError))
	writeError(c, appErr)
}

func writeError(c *gin.Context, appErr *errors.AppError) {
	c.JSON(appErr.Code, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

// ItemsResponse wraps an unpaginated collection with its size.
func ItemsResponse(c *gin.Context, items interface{}, total int) {
	SuccessResponse(c, http.StatusOK, "", gin.H{"items": items, "total": total})
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
