package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/internal/service"
	"github.com/maxviazov/realty-marketplace/pkg/response"
)

var queryValidator = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
	})
	return v
}()

// bindQuery binds and validates query parameters into dst. On failure the
// 400 response is already written.
func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "query", Message: "malformed query parameters"}}))
		return false
	}
	if err := queryValidator.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			response.WriteError(c, err)
			return false
		}
		fe := make([]service.FieldError, 0, len(verrs))
		for _, v := range verrs {
			fe = append(fe, service.FieldError{Field: v.Field(), Message: "failed " + v.Tag() + " " + v.Param()})
		}
		response.WriteError(c, service.NewInvalidInputError(fe))
		return false
	}
	return true
}

// bindPage reads ?page=&limit= and applies defaults.
func bindPage(c *gin.Context) (pagination.PageRequest, bool) {
	var req pagination.PageRequest
	if !bindQuery(c, &req) {
		return req, false
	}
	return req.Normalize(), true
}

// pathID parses a positive integer path parameter, writing 400 otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: name, Message: "must be a valid integer > 0"}}))
		return 0, false
	}
	return id, true
}

type statusRequest struct {
	Status string `json:"status"`
}

// bindJSON decodes the request body; parse details are not echoed back.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "body", Message: "malformed JSON body"}}))
		return false
	}
	return true
}
