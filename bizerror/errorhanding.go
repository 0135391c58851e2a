package bizerror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iwadcs/misc"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

func ErrorHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handle(c)
		c.Next()
	}
}

func handle(c *gin.Context) {
	if ret := recover(); ret != nil {
		err, ok := ret.(error)
		if !ok {
			err = errors.New(fmt.Sprintf("%s", ret))
		}
		HandleError(c, err)
	} else {
		if err := c.Errors.Last(); err != nil {
			HandleError(c, err)
		}
	}
}

func HandleError(c *gin.Context, err error) {
	logrus.WithField("path", c.Request.URL.Path).Error(err)

	genericErr := err
	var ginErr *gin.Error
	if errors.As(err, &ginErr) {
		genericErr = ginErr.Err
	}

	if bizErr, ok := genericErr.(BizError); ok {
		respond := bizErr.Respond()
		abort(c, respond.Status, respond.Code, respond.Message, respond.Data)
		return
	}

	// bad request:  io.EOF (no body).
	if errors.Is(genericErr, io.EOF) {
		abort(c, http.StatusBadRequest, "bad_request.body_not_found", "body not found", nil)
		return
	}
	// bad request: json syntax Error
	var syntaxErr *json.SyntaxError
	if errors.As(genericErr, &syntaxErr) {
		abort(c, http.StatusBadRequest, "bad_request.invalid_body_format", "invalid body format", syntaxErr.Error())
		return
	}
	// validation failed
	var validationErr validator.ValidationErrors
	if errors.As(genericErr, &validationErr) {
		abort(c, http.StatusBadRequest, "bad_request.validation_failed", "validation failed", validationErr.Error())
		return
	}

	switch {
	case errors.Is(genericErr, ErrUnauthenticated):
		abort(c, http.StatusUnauthorized, "common.unauthenticated", "unauthenticated", nil)
	case errors.Is(genericErr, ErrForbidden):
		abort(c, http.StatusForbidden, "security.forbidden", "access forbidden", nil)
	case errors.Is(genericErr, ErrInvalidPassword):
		abort(c, http.StatusBadRequest, "security.invalid_password", "incorrect current password", nil)
	case errors.Is(genericErr, ErrStateInvalid):
		abort(c, http.StatusConflict, "workorder.invalid_state", "work order is not pending", nil)
	case errors.Is(genericErr, ErrTooManyAttempts):
		abort(c, http.StatusTooManyRequests, "security.too_many_attempts", "too many login attempts", nil)
	case errors.Is(genericErr, ErrBackendUnavailable):
		abort(c, http.StatusServiceUnavailable, "common.backend_unavailable", "database connection not available", nil)
	case errors.Is(genericErr, gorm.ErrRecordNotFound) || errors.Is(genericErr, ErrNotFound):
		abort(c, http.StatusNotFound, "common.record_not_found", "record not found", nil)
	default:
		abort(c, http.StatusInternalServerError, "common.internal_server_error", genericErr.Error(), nil)
	}
}

func abort(c *gin.Context, status int, code, message string, data interface{}) {
	c.JSON(status, &misc.ErrorBody{Code: code, Message: message, Data: data})
	c.Abort()
}
