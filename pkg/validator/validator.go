package validator

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"dawaksahl-api/pkg/i18n"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s-]{6,19}$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report fields by their JSON name so errors line up with the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("password", validatePassword)
	v.RegisterValidation("phone", validatePhone)
	v.RegisterValidation("lang", validateLang)

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors renders field errors in the request language.
func (cv *CustomValidator) FormatValidationErrors(err error, lang i18n.Lang) map[string][]string {
	errors := make(map[string][]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors
	}

	for _, e := range validationErrors {
		field := e.Field()
		errors[field] = append(errors[field], fieldMessage(e, lang))
	}

	return errors
}

func fieldMessage(e validator.FieldError, lang i18n.Lang) string {
	field := e.Field()
	param := e.Param()

	if lang == i18n.Arabic {
		switch e.Tag() {
		case "required", "required_without", "required_if":
			return "الحقل " + field + " مطلوب"
		case "email":
			return "يجب أن يكون " + field + " بريداً إلكترونياً صحيحاً"
		case "min":
			return "يجب ألا يقل " + field + " عن " + param
		case "max":
			return "يجب ألا يزيد " + field + " عن " + param
		case "gte":
			return "يجب أن يكون " + field + " أكبر من أو يساوي " + param
		case "lte":
			return "يجب أن يكون " + field + " أقل من أو يساوي " + param
		case "gt":
			return "يجب أن يكون " + field + " أكبر من " + param
		case "oneof":
			return "يجب أن يكون " + field + " إحدى القيم: " + param
		case "uuid", "uuid4":
			return "يجب أن يكون " + field + " معرفاً صحيحاً"
		case "password":
			return "يجب أن تحتوي كلمة المرور على 8 أحرف على الأقل وحرف كبير وحرف صغير ورقم"
		case "phone":
			return "يجب أن يكون " + field + " رقم هاتف صحيحاً"
		case "latitude", "longitude":
			return "قيمة " + field + " غير صحيحة"
		default:
			return "قيمة " + field + " غير صحيحة"
		}
	}

	switch e.Tag() {
	case "required", "required_without", "required_if":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + param
	case "max":
		return field + " must be at most " + param
	case "gte":
		return field + " must be greater than or equal to " + param
	case "lte":
		return field + " must be less than or equal to " + param
	case "gt":
		return field + " must be greater than " + param
	case "oneof":
		return field + " must be one of: " + param
	case "uuid", "uuid4":
		return field + " must be a valid identifier"
	case "password":
		return "password must be at least 8 characters and contain an uppercase letter, a lowercase letter and a digit"
	case "phone":
		return field + " must be a valid phone number"
	default:
		return field + " is invalid"
	}
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validateLang(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case string(i18n.Arabic), string(i18n.English):
		return true
	}
	return false
}
