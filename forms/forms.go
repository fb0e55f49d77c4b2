// Package forms declares the input forms accepted by the HTML pages and the JSON API.
// Rules are gin binding tags evaluated by go-playground/validator.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegistrationForm is submitted to /register.
type RegistrationForm struct {
	Name     string `form:"name" json:"name" binding:"required,min=4,max=25,notreserved"`
	Email    string `form:"email" json:"email" binding:"omitempty,min=6,max=40"`
	Password string `form:"password" json:"password" binding:"required,eqfield=Confirm"`
	Confirm  string `form:"confirm" json:"confirm"`
}

// LoginForm is submitted to /login.
type LoginForm struct {
	Name     string `form:"name" json:"name" binding:"required,min=4,max=40"`
	Password string `form:"password" json:"password" binding:"required"`
}

// PostForm is submitted to /add_post. Content has no upper bound.
type PostForm struct {
	Content string `form:"content" json:"content" binding:"required"`
}

// MessageForm is submitted to /send_message.
type MessageForm struct {
	Recipient string `form:"recipient" json:"recipient" binding:"required"`
	Message   string `form:"message" json:"message" binding:"required"`
}

func (f *RegistrationForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
}

func (f *LoginForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
}

func (f *MessageForm) normalize() {
	f.Recipient = strings.TrimSpace(f.Recipient)
}

// normalizer is implemented by forms whose fields are trimmed before validation.
type normalizer interface {
	normalize()
}

// ReservedNames cannot be registered because a page route already owns /<name>.
var ReservedNames = map[string]bool{
	"register":     true,
	"login":        true,
	"logout":       true,
	"add_post":     true,
	"send_message": true,
	"messages":     true,
	"inbox":        true,
	"outbox":       true,
	"health":       true,
	"api":          true,
}

// Bind decodes the request into obj, trims it, and validates the trimmed values.
// Rules therefore apply to what is stored, not to what was typed.
func Bind(ctx *gin.Context, obj interface{}) error {
	err := ctx.ShouldBind(obj)
	var verrs validator.ValidationErrors
	if err != nil && !errors.As(err, &verrs) {
		return err
	}
	n, ok := obj.(normalizer)
	if !ok {
		return err
	}
	n.normalize()
	return binding.Validator.ValidateStruct(obj)
}

// FieldErrors maps a form field name to a human readable message.
type FieldErrors map[string]string

// FormKey holds errors that do not belong to a single field, e.g. an unparsable body.
const FormKey = "_form"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("notreserved", func(fl validator.FieldLevel) bool {
			return !ReservedNames[strings.ToLower(fl.Field().String())]
		})
	}
}

// fieldName reports fields by their form name so messages line up with the HTML inputs.
func fieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// Errors translates a binding error into per-field messages.
func Errors(err error) FieldErrors {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{FormKey: "Invalid form submission."}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "eqfield":
		return "Passwords must match"
	case "notreserved":
		return "This name is reserved."
	default:
		return "Invalid value."
	}
}
