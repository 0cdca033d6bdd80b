package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() Input {
	return Input{
		PromotionCode:      "NEWYEAR",
		Description:        "New year sale",
		StartDate:          "2026-01-01",
		EndDate:            "2026-01-31",
		DiscountPercentage: 15,
	}
}

func TestValidateAcceptsValidInput(t *testing.T) {
	assert.Nil(t, Validate(validInput()))

	in := validInput()
	in.EndDate = in.StartDate
	in.DiscountPercentage = 100
	assert.Nil(t, Validate(in))
}

func TestValidateRequiredFields(t *testing.T) {
	errs := Validate(Input{DiscountPercentage: 10})

	assert.Equal(t, ValidationErrors{
		FieldPromotionCode: "Promotion code is required!",
		FieldDescription:   "Description is required!",
		FieldStartDate:     "Start date is required!",
		FieldEndDate:       "End date is required!",
	}, errs)
}

func TestValidateDateOrder(t *testing.T) {
	in := validInput()
	in.StartDate = "2026-02-01"

	errs := Validate(in)
	assert.Equal(t, "Start date cannot be after the end date!", errs[FieldStartDate])
	assert.Equal(t, "End date cannot be before the start date!", errs[FieldEndDate])
}

func TestValidateDiscountBounds(t *testing.T) {
	cases := map[float64]string{
		0:    "Discount percentage must be greater than 0!",
		-5:   "Discount percentage must be greater than 0!",
		101:  "Discount percentage cannot be more than 100%!",
		0.5:  "",
		99.9: "",
	}

	for value, want := range cases {
		in := validInput()
		in.DiscountPercentage = value
		errs := Validate(in)
		assert.Equal(t, want, errs[FieldDiscountPercentage], "discount %v", value)
	}
}

func TestValidateRejectsMalformedDate(t *testing.T) {
	in := validInput()
	in.StartDate = "01/02/2026"

	errs := Validate(in)
	assert.Equal(t, "Start date is not a valid date!", errs[FieldStartDate])
	assert.Contains(t, errs.Error(), "startDate")
}

func TestParseDateAcceptsTimestamps(t *testing.T) {
	got, err := ParseDate("2026-03-04T10:00:00+07:00")
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-04", got.Format(DateLayout))
}
