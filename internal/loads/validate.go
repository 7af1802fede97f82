package loads

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/rhyrak/go-facultyload/pkg/model"
)

// ErrInvalidForm wraps validation failures of a non-teaching load form.
var ErrInvalidForm = errors.New("invalid non-teaching load")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateForm checks a submitted non-teaching load form.
func ValidateForm(in model.NonTeachingLoadInput) error {
	if err := formValidator().Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidForm, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	if len(in.Terms) > len(model.Terms) {
		return fmt.Errorf("%w: %d terms, at most %d", ErrInvalidForm, len(in.Terms), len(model.Terms))
	}
	for _, t := range in.Terms {
		if t.Checked && !slices.Contains(model.Terms, t.Term) {
			return fmt.Errorf("%w: unknown term %q", ErrInvalidForm, t.Term)
		}
	}
	return nil
}
