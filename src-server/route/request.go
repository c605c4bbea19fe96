package route

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"levelup/src-server/model"

	"github.com/go-playground/validator/v10"
)

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their json name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

type GameReqBody struct {
	Title           string `json:"title" validate:"required,max=50"`
	Maker           string `json:"maker" validate:"required,max=50"`
	NumberOfPlayers int    `json:"number_of_players" validate:"required,min=1"`
	SkillLevel      int    `json:"skill_level" validate:"required,min=1"`
	GameType        int64  `json:"game_type" validate:"required"`
}

type EventReqBody struct {
	Game        int64  `json:"game" validate:"required"`
	Description string `json:"description" validate:"required,max=90"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Organizer   int64  `json:"organizer" validate:"omitempty,min=1"`
}

func (body *GameReqBody) trimSpace() {
	body.Title = strings.TrimSpace(body.Title)
	body.Maker = strings.TrimSpace(body.Maker)
}

func (body *EventReqBody) trimSpace() {
	body.Description = strings.TrimSpace(body.Description)
	body.Date = strings.TrimSpace(body.Date)
	body.Time = strings.TrimSpace(body.Time)
}

// Decode the JSON body into dst and validate it. Every failure comes back as
// model.FieldErrors. String fields are trimmed before their lengths are checked.
func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		fieldErrors := model.FieldErrors{}
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			fieldErrors.Add(typeErr.Field, typeMessage(typeErr.Type.Kind()))
		default:
			fieldErrors.Add("non_field_errors", fmt.Sprintf("JSON parse error - %s", err))
		}
		return fieldErrors
	}
	if body, ok := dst.(interface{ trimSpace() }); ok {
		body.trimSpace()
	}
	return validateBody(dst)
}

func validateBody(body any) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validateBody: %w", err)
	}
	fieldErrors := model.FieldErrors{}
	for _, fieldErr := range validationErrors {
		fieldErrors.Add(fieldErr.Field(), validationMessage(fieldErr))
	}
	return fieldErrors
}

func validationMessage(fieldErr validator.FieldError) string {
	isString := fieldErr.Kind() == reflect.String
	switch fieldErr.Tag() {
	case "required":
		if isString {
			return "This field may not be blank."
		}
		return "This field is required."
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fieldErr.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fieldErr.Param())
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fieldErr.Param())
	}
	return fmt.Sprintf("Failed on the %q rule.", fieldErr.Tag())
}

func typeMessage(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	case reflect.String:
		return "Not a valid string."
	}
	return "Invalid value."
}
