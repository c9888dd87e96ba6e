package utils

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response defines the standard API response envelope.
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    Meta        `json:"meta"`
}

// ErrorInfo provides details for error responses.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains request-scoped metadata.
type Meta struct {
	RequestID  string      `json:"requestId"`
	Timestamp  string      `json:"timestamp"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination holds pagination metadata for list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Success writes a success response with the standard envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
		Meta:    newMeta(c),
	})
}

// SuccessWithPagination writes a success response with pagination metadata.
func SuccessWithPagination(c *gin.Context, code int, message string, data interface{}, page, limit, totalItems int) {
	page, limit = NormalizePage(page, limit)
	meta := newMeta(c)
	meta.Pagination = &Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		TotalPages: (totalItems + limit - 1) / limit,
	}
	c.JSON(code, Response{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// NormalizePage applies the default page (1) and limit (50, max 100).
func NormalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// PageBounds returns the [start, end) slice bounds of a page over n items.
func PageBounds(page, limit, n int) (int, int) {
	page, limit = NormalizePage(page, limit)
	start := (page - 1) * limit
	if start > n {
		start = n
	}
	end := start + limit
	if end > n {
		end = n
	}
	return start, end
}

// Error writes an error response with provided API error code and message.
func Error(c *gin.Context, code int, errCode, message string) {
	ErrorWithData(c, code, errCode, message, nil)
}

// ErrorWithData writes an error response that still carries data, for
// failures that happened after part of the work was stored.
func ErrorWithData(c *gin.Context, code int, errCode, message string, data interface{}) {
	c.JSON(code, Response{
		Success: false,
		Code:    code,
		Message: message,
		Data:    data,
		Error: &ErrorInfo{
			Code:    errCode,
			Message: message,
		},
		Meta: newMeta(c),
	})
}

// errorStatus maps sentinel errors to HTTP status codes.
var errorStatus = []struct {
	err    error
	status int
}{
	{ErrValidation, http.StatusBadRequest},
	{ErrInsufficientStock, http.StatusConflict},
	{ErrProductNotFound, http.StatusNotFound},
	{ErrSaleNotFound, http.StatusNotFound},
	{ErrEventNotFound, http.StatusNotFound},
	{ErrCategoryNotFound, http.StatusNotFound},
	{ErrProfileNotFound, http.StatusNotFound},
	{ErrCategoryExists, http.StatusConflict},
	{ErrEmailTaken, http.StatusConflict},
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrInvalidToken, http.StatusUnauthorized},
	{ErrSessionExpired, http.StatusUnauthorized},
	{ErrStockSync, http.StatusBadGateway},
	{ErrStore, http.StatusBadGateway},
}

// ErrorFrom writes an error response derived from err. The first matching
// sentinel decides both status and error code; anything else is a 500.
func ErrorFrom(c *gin.Context, err error) {
	ErrorFromWithData(c, err, nil)
}

// ErrorFromWithData is ErrorFrom with a data payload.
func ErrorFromWithData(c *gin.Context, err error, data interface{}) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			ErrorWithData(c, e.status, e.err.Error(), publicMessage(err, e.err), data)
			return
		}
	}
	ErrorWithData(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", data)
}

// publicMessage strips the sentinel prefix from a wrapped error message.
func publicMessage(err, sentinel error) string {
	msg := err.Error()
	if msg == sentinel.Error() {
		return strings.ToLower(strings.ReplaceAll(msg, "_", " "))
	}
	return strings.TrimPrefix(msg, sentinel.Error()+": ")
}

func newMeta(c *gin.Context) Meta {
	return Meta{
		RequestID: getRequestID(c),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return uuid.New().String()[:8]
}
