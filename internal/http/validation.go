package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldIssue describe un problema de validacion de un campo.
type FieldIssue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

var fieldNamesOnce sync.Once

// registerFieldNames hace que los errores usen el nombre del campo en el wire y no el del struct.
func registerFieldNames() {
	fieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
}

func bindJSON(c *gin.Context, dst any) bool {
	registerFieldNames()
	if err := c.ShouldBindJSON(dst); err != nil {
		respondValidation(c, validationIssues(err, "body"))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	registerFieldNames()
	if err := c.ShouldBindQuery(dst); err != nil {
		respondValidation(c, validationIssues(err, "query"))
		return false
	}
	return true
}

func bindURI(c *gin.Context, dst any) bool {
	registerFieldNames()
	if err := c.ShouldBindUri(dst); err != nil {
		respondValidation(c, validationIssues(err, "params"))
		return false
	}
	return true
}

func validationIssues(err error, source string) []FieldIssue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldIssue{{
			Path:    source,
			Code:    "invalid_" + source,
			Message: fmt.Sprintf("Malformed %s", source),
		}}
	}
	issues := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, FieldIssue{
			Path:    fe.Field(),
			Code:    fe.Tag(),
			Message: issueMessage(fe),
		})
	}
	return issues
}

func issueMessage(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "uuid":
		return "Invalid " + fe.Field()
	case "min":
		if isString {
			if fe.Param() == "1" {
				return label + " is required"
			}
			return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", label, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

func fieldLabel(field string) string {
	if field == "" {
		return "Value"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
