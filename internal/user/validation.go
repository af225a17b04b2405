package user

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/ko"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	frtrans "github.com/go-playground/validator/v10/translations/fr"
	"golang.org/x/text/language"

	"github.com/sudo-init-do/restful-users/internal/apperr"
)

// Validator checks request bodies against their struct tags and reports
// failures as apperr validation conditions with translated messages.
type Validator struct {
	v   *validator.Validate
	uni *ut.UniversalTranslator
}

func NewValidator() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("past", isPast); err != nil {
		return nil, fmt.Errorf("register past validation: %w", err)
	}

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, fr.New(), ko.New())

	enT, _ := uni.GetTranslator("en")
	frT, _ := uni.GetTranslator("fr")
	koT, _ := uni.GetTranslator("ko")

	if err := entrans.RegisterDefaultTranslations(v, enT); err != nil {
		return nil, fmt.Errorf("register en translations: %w", err)
	}
	if err := frtrans.RegisterDefaultTranslations(v, frT); err != nil {
		return nil, fmt.Errorf("register fr translations: %w", err)
	}

	custom := []struct {
		trans ut.Translator
		tag   string
		text  string
	}{
		{enT, "past", "{0} must be a date in the past"},
		{frT, "past", "{0} doit être une date passée"},
		{koT, "past", "{0}은(는) 과거 날짜만 가능합니다"},
		{koT, "min", "{0}은(는) {1}글자 이상 입력해 주세요"},
	}
	for _, c := range custom {
		if err := v.RegisterTranslation(c.tag, c.trans, addText(c.tag, c.text), translateWithParam(c.tag)); err != nil {
			return nil, fmt.Errorf("register %s translation: %w", c.tag, err)
		}
	}

	return &Validator{v: v, uni: uni}, nil
}

// Validate satisfies echo.Validator and reports messages in English.
func (v *Validator) Validate(i any) error {
	return v.ValidateLocalized(i, "")
}

// ValidateLocalized validates i and translates violation messages into the
// best match for an Accept-Language header value.
func (v *Validator) ValidateLocalized(i any, acceptLanguage string) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	trans, _ := v.uni.FindTranslator(locales(acceptLanguage)...)
	violations := make([]apperr.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, apperr.Violation{
			Field:         fe.Field(),
			RejectedValue: fe.Value(),
			Message:       fe.Translate(trans),
		})
	}
	return apperr.ValidationFailed(violations)
}

func isPast(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && t.Before(time.Now())
}

func addText(tag, text string) validator.RegisterTranslationsFunc {
	return func(t ut.Translator) error {
		return t.Add(tag, text, true)
	}
}

func translateWithParam(tag string) validator.TranslationFunc {
	return func(t ut.Translator, fe validator.FieldError) string {
		msg, err := t.T(tag, fe.Field(), fe.Param())
		if err != nil {
			return fe.Error()
		}
		return msg
	}
}

// locales turns an Accept-Language value into base language codes, best first.
func locales(acceptLanguage string) []string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		base, _ := tag.Base()
		out = append(out, base.String())
	}
	return out
}
