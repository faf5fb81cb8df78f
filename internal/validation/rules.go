// Package validation checks contact field values against format rules.
//
// Rule failures are data, not errors: every check returns a human readable
// message, or "" when the value passes.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// Rule names a field format rule.
type Rule string

const (
	RuleName  Rule = "name"
	RuleEmail Rule = "email"
	RulePhone Rule = "phone"
)

var (
	namePattern    = regexp.MustCompile(`^[\p{L}\p{Z}\s'-]+$`)
	emailPattern   = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]{2,}$`)
	phoneStrip     = regexp.MustCompile(`[^\d+]`)
	phonePattern   = regexp.MustCompile(`^\+?\d{7,15}$`)
	validatorOnce  sync.Once
	validatorCache *validator.Validate
)

// ruleTags maps each rule to its validator tag chain. Tags are evaluated in
// order and the first failing tag selects the message.
var ruleTags = map[Rule]string{
	RuleName:  "required,min=2,max=80,personname",
	RuleEmail: "required,emailshape",
	RulePhone: "required,phonedigits",
}

var ruleMessages = map[Rule]map[string]string{
	RuleName: {
		"required":   "Name is required",
		"min":        "Name must be 2–80 characters",
		"max":        "Name must be 2–80 characters",
		"personname": "Only letters, spaces, and - ' allowed",
	},
	RuleEmail: {
		"required":   "Email is required",
		"emailshape": "Enter a valid email",
	},
	RulePhone: {
		"required":    "Phone is required",
		"phonedigits": "Enter 7–15 digits (optional +)",
	},
}

func validate() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		mustRegister(v, "personname", func(fl validator.FieldLevel) bool {
			return namePattern.MatchString(fl.Field().String())
		})
		mustRegister(v, "emailshape", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
		mustRegister(v, "phonedigits", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(phoneStrip.ReplaceAllString(fl.Field().String(), ""))
		})
		validatorCache = v
	})
	return validatorCache
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Check applies rule to the trimmed value and returns the violation message,
// or "" if the value is valid.
func Check(rule Rule, value string) string {
	tag, ok := ruleTags[rule]
	if !ok {
		return "Unknown validation rule " + string(rule)
	}

	v := strings.TrimSpace(value)
	if rule == RuleName {
		// compare lengths on composed characters
		v = norm.NFC.String(v)
	}

	err := validate().Var(v, tag)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := ruleMessages[rule][verrs[0].Tag()]; ok {
			return msg
		}
	}
	return err.Error()
}

// Name validates a person name.
func Name(value string) string { return Check(RuleName, value) }

// Email validates an email address.
func Email(value string) string { return Check(RuleEmail, value) }

// Phone validates a phone number.
func Phone(value string) string { return Check(RulePhone, value) }
