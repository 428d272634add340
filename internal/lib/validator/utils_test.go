package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	govalidator "github.com/go-playground/validator/v10"
)

func newValidate(t *testing.T) *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	require.NoError(t, v.RegisterValidation("notfutureyear", ValidateYearNotInFuture))
	return v
}

func TestValidateYearNotInFuture(t *testing.T) {
	v := newValidate(t)
	type input struct {
		Year int32 `json:"year" validate:"required,notfutureyear"`
	}
	currentYear := int32(time.Now().Year())

	assert.Empty(t, ValidateStruct(v, input{Year: currentYear}))
	assert.Empty(t, ValidateStruct(v, input{Year: 1895}))

	errs := ValidateStruct(v, input{Year: currentYear + 1})
	assert.Contains(t, errs, "year")
}

func TestValidateStructUsesJsonNamesAndOverrides(t *testing.T) {
	v := newValidate(t)
	type input struct {
		Score int32 `json:"score" validate:"required,gte=1,lte=10" errorMsg:"Score must be between 1 and 10"`
	}
	errs := ValidateStruct(v, input{Score: 11})
	assert.Equal(t, "Score must be between 1 and 10", errs["score"])

	errs = ValidateStruct(v, input{Score: 10})
	assert.Empty(t, errs)

	errs = ValidateStruct(v, input{Score: 1})
	assert.Empty(t, errs)
}
