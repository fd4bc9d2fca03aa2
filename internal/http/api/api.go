package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
)

type APIError struct {
	Code    int
	Message string
}

func NewError(code int, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// Response lets a handler pick a success status other than 200.
type Response struct {
	Code int
	Body any
}

func Created(body any) Response {
	return Response{Code: http.StatusCreated, Body: body}
}

type HandlerFuncWithAuth func(ctx *gin.Context, admin *model.Admin) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		admin, ok := middleware.GetCurrentAdmin(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, admin)
		writeResult(ctx, result, apiErr)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		writeResult(ctx, result, apiErr)
	}
}

func writeResult(ctx *gin.Context, result any, apiErr *APIError) {
	if apiErr != nil {
		ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}
	if resp, ok := result.(Response); ok {
		ctx.JSON(resp.Code, resp.Body)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
