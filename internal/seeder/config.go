package seeder

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/department"
	"github.com/go-playground/validator/v10"
)

// Config is one seeding run. Counts are validated before anything touches
// the database.
type Config struct {
	Employees   int   `flag:"employees" validate:"gt=0"`
	Departments int   `flag:"departments" validate:"gt=0"`
	Levels      int   `flag:"levels" validate:"gt=0"`
	Roles       int   `flag:"roles" validate:"gt=0"`
	Seed        int64 `flag:"seed"`
	BatchSize   int   `flag:"batch-size" validate:"gt=0"`
	Truncate    bool  `flag:"truncate"`
	StrictRoles bool  `flag:"strict-roles"`
}

func DefaultConfig() Config {
	return Config{
		Employees:   60_000,
		Departments: department.DefaultShape.Total(),
		Levels:      department.DefaultShape.Levels(),
		Roles:       10,
		Seed:        42,
		BatchSize:   5_000,
	}
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("flag")
	})
	return v
}()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return internal.NewConfigurationError(fmt.Sprintf("%s must be > 0", fieldErrs[0].Field()), internal.ErrCodeInvalidConfig)
		}
		return internal.NewConfigurationError(err.Error(), internal.ErrCodeInvalidConfig)
	}

	shape := department.DefaultShape
	if c.Levels != shape.Levels() {
		return internal.NewConfigurationError(
			fmt.Sprintf("this seeder must create a department tree with exactly %d levels (--levels=%d)", shape.Levels(), shape.Levels()),
			internal.ErrCodeInvalidConfig,
		)
	}
	if c.Departments != shape.Total() {
		return internal.NewConfigurationError(
			fmt.Sprintf("this seeder must create exactly %d departments (--departments=%d)", shape.Total(), shape.Total()),
			internal.ErrCodeInvalidConfig,
		)
	}
	return nil
}
