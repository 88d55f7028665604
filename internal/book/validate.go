package book

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// CreateInput is the body accepted when creating a book. PublishDate is a pointer
// so that a missing date can be told apart from the zero time.
type CreateInput struct {
	Title       string     `json:"title" validate:"required,notblank,max=50"`
	Author      string     `json:"author" validate:"required,notblank,max=50"`
	Genre       string     `json:"genre" validate:"required,notblank,max=50"`
	Description string     `json:"description" validate:"required,notblank,max=200"`
	PublishDate *time.Time `json:"publishDate" validate:"required"`
	Price       float64    `json:"price" validate:"gt=0"`
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a CreateInput breaks one or more rules.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return "invalid book: " + strings.Join(msgs, "; ")
}

// Validate checks the input against the book rules.
func (in CreateInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]

		var message string
		switch fe.Tag() {
		case "required", "notblank":
			message = fmt.Sprintf("%s is required", field)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		out.Errors = append(out.Errors, FieldError{Field: field, Message: message})
	}
	return out
}

// Book converts a validated input into a new, not yet stored, Book.
func (in CreateInput) Book() Book {
	b := Book{
		Title:       in.Title,
		Author:      in.Author,
		Genre:       in.Genre,
		Price:       in.Price,
		Description: in.Description,
	}
	if in.PublishDate != nil {
		b.PublishDate = in.PublishDate.UTC()
	}
	return b
}
