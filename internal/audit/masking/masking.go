// Package masking redacts customer contact details before they are written to
// the audit trail.
package masking

import "strings"

const maskToken = "****"

// MaskEmail keeps the first character of the local part and the domain:
// alice@example.com becomes a****@example.com.
func MaskEmail(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	local, domain, ok := strings.Cut(trimmed, "@")
	if !ok || local == "" {
		return MaskTail(trimmed)
	}
	return local[:1] + maskToken + "@" + domain
}

// MaskTail redacts everything but the last four characters.
func MaskTail(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) <= 4 {
		return maskToken
	}
	return maskToken + trimmed[len(trimmed)-4:]
}

// MaskFields returns a copy of input with the named string fields redacted.
// Fields called "email" keep their domain; the rest keep a four character
// suffix.
func MaskFields(input map[string]any, fields ...string) map[string]any {
	if len(input) == 0 {
		return nil
	}

	sensitive := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		sensitive[field] = struct{}{}
	}

	masked := make(map[string]any, len(input))
	for key, value := range input {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey == "" {
			continue
		}
		text, isString := value.(string)
		if _, ok := sensitive[trimmedKey]; !ok || !isString {
			masked[trimmedKey] = value
			continue
		}
		if trimmedKey == "email" {
			masked[trimmedKey] = MaskEmail(text)
		} else {
			masked[trimmedKey] = MaskTail(text)
		}
	}
	return masked
}
