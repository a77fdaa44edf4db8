package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/interfaces/http/response"
	"menvo.backend/pkg/utils"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their json name
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// bindJSON decodes the body into dst and writes a 400 when it fails
func bindJSON(c *gin.Context, dst interface{}) bool {
	useJSONFieldNames()
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, bindingError(err))
		return false
	}
	return true
}

// bindingError converts validator failures into field-level messages
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domainerrors.BadRequest("malformed request body")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return domainerrors.Validation("invalid request body", fields)
}

// fieldPath drops the top-level struct name from the namespace: "RegisterInput.email" -> "email"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "url":
		return name + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", name, fe.Param())
	}
	return name + " is invalid"
}

// pathID parses a uuid path parameter and writes a 400 when it is malformed
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, ok := utils.ParseUUID(c.Param(name))
	if !ok {
		response.Error(c, domainerrors.FieldError(name, name+" must be a valid id"))
		return uuid.Nil, false
	}
	return id, true
}

// pageQuery reads page and limit; bad numbers fall back to the defaults
func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	p := utils.GetPaginationParams(page, limit)
	return p.Page, p.Limit
}
