package recipe

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func draftValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the fields the remote API rejects.
func (d Draft) Validate() error {
	if err := draftValidator().Struct(d); err != nil {
		return fmt.Errorf("invalid recipe: %w", err)
	}
	return nil
}
