package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/4oBuko/spy-cat-console/internal/models"
	"github.com/4oBuko/spy-cat-console/internal/myerrors"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	MsgInvalidForm   = "Please fill in all fields correctly"
	MsgInvalidSalary = "Please enter a valid salary"
)

// decimalPattern is what a browser number input submits: optional sign,
// digits with an optional fraction, optional exponent. No hex, no digit
// separators, no Inf or NaN.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// The form rules live on gin's validator so ShouldBind and the CLI apply
// the same binding tags.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		panic("gin binding validator is not go-playground/validator")
	}
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "breed", func(fl validator.FieldLevel) bool {
		return models.IsValidBreed(fl.Field().String())
	})
	mustRegister(v, "nonnegative", func(fl validator.FieldLevel) bool {
		_, ok := parseAmount(fl.Field().String())
		return ok
	})
	mustRegister(v, "wholenumber", func(fl validator.FieldLevel) bool {
		_, ok := parseWhole(fl.Field().String())
		return ok
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// parseAmount accepts a finite, non-negative decimal.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}

// parseWhole accepts a non-negative decimal with no fractional part, so
// "1e1" is ten years.
func parseWhole(s string) (int, bool) {
	f, ok := parseAmount(s)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// ParseCatForm validates the registration form and converts it into a
// creation request. The name is sent as typed.
func ParseCatForm(form models.CatForm) (models.CatCreate, error) {
	if err := binding.Validator.ValidateStruct(form); err != nil {
		return models.CatCreate{}, &myerrors.RequestError{Message: MsgInvalidForm, Err: err}
	}
	years, _ := parseWhole(form.YearsOfExperience)
	salary, _ := parseAmount(form.Salary)

	return models.CatCreate{
		Name:              form.Name,
		YearsOfExperience: years,
		Breed:             form.Breed,
		Salary:            salary,
	}, nil
}

func ParseSalary(input string) (float64, error) {
	salary, ok := parseAmount(input)
	if !ok {
		return 0, &myerrors.RequestError{Message: MsgInvalidSalary}
	}
	return salary, nil
}
