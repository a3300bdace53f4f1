package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldError describes a single failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// ValidationError lists every rule a product broke.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid product: " + strings.Join(msgs, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
	translator   ut.Translator
)

func productValidator() (*validator.Validate, ut.Translator) {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(jsonFieldName)

		enLocale := en.New()
		trans, _ := ut.New(enLocale, enLocale).GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("sku", validSKU)
		_ = v.RegisterTranslation("sku", trans,
			func(t ut.Translator) error {
				return t.Add("sku", "{0} must contain '-' and end with a 3 digit sequence like '001'", true)
			},
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T("sku", fe.Field())
				return msg
			},
		)
		v.RegisterStructValidation(productRules, Product{})

		validate = v
		translator = trans
	})
	return validate, translator
}

// ValidateProduct checks p against the catalogue schema and business rules.
func ValidateProduct(p Product) error {
	v, trans := productValidator()

	err := v.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate product: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		msg := fe.Translate(trans)
		if strings.HasPrefix(fe.Tag(), "rule_") {
			msg = businessRuleMessages[fe.Tag()]
		}
		out.Fields = append(out.Fields, FieldError{
			Field:   strings.TrimPrefix(fe.Namespace(), "Product."),
			Tag:     fe.Tag(),
			Message: msg,
		})
	}
	return out
}

var businessRuleMessages = map[string]string{
	"rule_inactive_when_empty": "stock is 0, is_active must be false",
	"rule_discount_rating":     "discounted product must have a rating",
}

func productRules(sl validator.StructLevel) {
	p := sl.Current().Interface().(Product)
	if p.Stock == 0 && p.IsActive {
		sl.ReportError(p.IsActive, "is_active", "IsActive", "rule_inactive_when_empty", "")
	}
	if p.DiscountPercent > 0 && p.Rating == 0 {
		sl.ReportError(p.Rating, "rating", "Rating", "rule_discount_rating", "")
	}
}

// validSKU requires a hyphen. A trailing all-digit segment must be exactly 3 long.
func validSKU(fl validator.FieldLevel) bool {
	sku := fl.Field().String()
	idx := strings.LastIndex(sku, "-")
	if idx < 0 {
		return false
	}
	last := sku[idx+1:]
	if last == "" || !allDigits(last) {
		return true
	}
	return len(last) == 3
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
