package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const (
	FieldPromotionCode      = "promotionCode"
	FieldDescription        = "description"
	FieldStartDate          = "startDate"
	FieldEndDate            = "endDate"
	FieldDiscountPercentage = "discountPercentage"
)

// Input is the editable part of a promotion as it travels over the wire.
// Dates are calendar days in DateLayout; RFC3339 timestamps are accepted too.
type Input struct {
	PromotionCode      string  `json:"promotionCode"`
	Description        string  `json:"description"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	DiscountPercentage float64 `json:"discountPercentage"`
	ImageURL           string  `json:"imageUrl"`
}

// ValidationErrors maps a field name to the message shown next to it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "invalid promotion: " + strings.Join(parts, "; ")
}

// Validate checks a promotion the same way for the admin form and the API.
// It returns nil when the input is acceptable.
func Validate(in Input) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(in.PromotionCode) == "" {
		errs[FieldPromotionCode] = "Promotion code is required!"
	}
	if strings.TrimSpace(in.Description) == "" {
		errs[FieldDescription] = "Description is required!"
	}

	start, startErr := parseDate(in.StartDate, FieldStartDate, "Start date", errs)
	end, endErr := parseDate(in.EndDate, FieldEndDate, "End date", errs)
	if startErr == nil && endErr == nil && start.After(end) {
		errs[FieldStartDate] = "Start date cannot be after the end date!"
		errs[FieldEndDate] = "End date cannot be before the start date!"
	}

	switch {
	case in.DiscountPercentage <= 0:
		errs[FieldDiscountPercentage] = "Discount percentage must be greater than 0!"
	case in.DiscountPercentage > 100:
		errs[FieldDiscountPercentage] = "Discount percentage cannot be more than 100%!"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func parseDate(raw, field, label string, errs ValidationErrors) (time.Time, error) {
	t, err := ParseDate(raw)
	switch {
	case errors.Is(err, errDateMissing):
		errs[field] = label + " is required!"
	case err != nil:
		errs[field] = label + " is not a valid date!"
	}
	return t, err
}

// ParseDate reads a calendar day or an RFC3339 timestamp and returns it in UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errDateMissing
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
