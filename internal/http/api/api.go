package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the error half of every handler result. It is rendered as
// {"error": Message} with status Code.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func BadRequest(msg string) *APIError {
	return &APIError{Code: http.StatusBadRequest, Message: msg}
}

func NotFound(msg string) *APIError {
	return &APIError{Code: http.StatusNotFound, Message: msg}
}

func Internal(msg string) *APIError {
	return &APIError{Code: http.StatusInternalServerError, Message: msg}
}

type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// Status makes ResolveEndpoint answer with Code instead of 200.
type Status struct {
	Code int
	Body any
}

func Created(body any) Status {
	return Status{Code: http.StatusCreated, Body: body}
}

// Data makes ResolveEndpoint write Body verbatim instead of JSON.
type Data struct {
	ContentType string
	Body        []byte
}

// Message is the body of endpoints that only confirm an action.
type Message struct {
	Message string `json:"message"`
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		switch r := result.(type) {
		case Status:
			ctx.JSON(r.Code, r.Body)
		case Data:
			ctx.Data(http.StatusOK, r.ContentType, r.Body)
		default:
			ctx.JSON(http.StatusOK, result)
		}
	}
}
