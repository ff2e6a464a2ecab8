// Package validation holds the per-field validators run before any employee
// mutation. Each validator is a pure function returning the normalized value
// or a rejection reason; callers collect reasons instead of failing fast.
package validation

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRe = regexp.MustCompile(`^\+?[1-9][\d\-()\s]{7,15}$`)
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)

	// Strips all markup from free-text input before it reaches storage.
	sanitizer = bluemonday.StrictPolicy()

	maxSalary = decimal.RequireFromString("9999999.99")

	hireDateFormats = []string{"2006-01-02", "01/02/2006", "02-01-2006"}
)

// Sanitize strips markup/tags from free text and trims whitespace.
// Applied before any length check. The policy escapes entities while
// stripping, so the result is unescaped back to plain text.
func Sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(text)))
}

// Name validates an employee name: sanitized, 2-100 chars, letters, spaces,
// hyphens, apostrophes and periods only.
func Name(name string) (string, error) {
	name = Sanitize(name)
	if name == "" {
		return "", errors.New("Name is required")
	}
	if len(name) < 2 {
		return "", errors.New("Name must be at least 2 characters")
	}
	if len(name) > 100 {
		return "", errors.New("Name must be less than 100 characters")
	}
	if !nameRe.MatchString(name) {
		return "", errors.New("Name contains invalid characters")
	}
	return name, nil
}

// Email validates and lowercases an email address.
func Email(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return "", errors.New("Invalid email format")
	}
	return email, nil
}

// Phone validates an optional phone number. An empty value is valid and
// normalizes to "".
func Phone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", nil
	}
	if !phoneRe.MatchString(phone) {
		return "", errors.New("Invalid phone format")
	}
	return phone, nil
}

// Salary accepts a JSON number or a string with currency symbols/commas and
// normalizes it to a two-decimal fixed-point value in (0, 9999999.99].
func Salary(v any) (decimal.Decimal, error) {
	var d decimal.Decimal
	switch s := v.(type) {
	case nil:
		return d, errors.New("Salary is required")
	case float64:
		d = decimal.NewFromFloat(s)
	case int:
		d = decimal.NewFromInt(int64(s))
	case int64:
		d = decimal.NewFromInt(s)
	case decimal.Decimal:
		d = s
	case string:
		cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
		if cleaned == "" {
			return d, errors.New("Salary is required")
		}
		var err error
		d, err = decimal.NewFromString(cleaned)
		if err != nil {
			return d, errors.New("Invalid salary format")
		}
	default:
		return d, errors.New("Invalid salary format")
	}

	if !d.IsPositive() {
		return d, errors.New("Salary must be greater than 0")
	}
	if d.GreaterThan(maxSalary) {
		return d, errors.New("Salary is too large")
	}
	return d.Round(2), nil
}

// HireDate parses YYYY-MM-DD, MM/DD/YYYY or DD-MM-YYYY and bounds the result
// to (today-100y, today].
func HireDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("Hire date is required")
	}

	var hireDate time.Time
	var parsed bool
	for _, layout := range hireDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			hireDate = t
			parsed = true
			break
		}
	}
	if !parsed {
		return time.Time{}, fmt.Errorf("Invalid date format. Use one of: %s", strings.Join(hireDateFormats, ", "))
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if hireDate.After(today) {
		return time.Time{}, errors.New("Hire date cannot be in the future")
	}
	earliest := time.Date(today.Year()-100, time.January, 1, 0, 0, 0, 0, time.UTC)
	if hireDate.Before(earliest) {
		return time.Time{}, errors.New("Hire date is too far in the past")
	}
	return hireDate, nil
}

// Department validates a department name: sanitized, 2-50 chars.
func Department(department string) (string, error) {
	return boundedText(department, "Department name")
}

// Position validates a job title: sanitized, 2-50 chars.
func Position(position string) (string, error) {
	return boundedText(position, "Position")
}

func boundedText(s, label string) (string, error) {
	s = Sanitize(s)
	if s == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	if n := utf8.RuneCountInString(s); n < 2 {
		return "", fmt.Errorf("%s must be at least 2 characters", label)
	} else if n > 50 {
		return "", fmt.Errorf("%s must be less than 50 characters", label)
	}
	return s, nil
}

// Status accepts exactly "Active" or "Inactive".
func Status(status string) (string, error) {
	if status != "Active" && status != "Inactive" {
		return "", errors.New("Status must be one of: Active, Inactive")
	}
	return status, nil
}

// Address validates an optional address: sanitized, at most 200 chars.
func Address(address string) (string, error) {
	address = Sanitize(address)
	if utf8.RuneCountInString(address) > 200 {
		return "", errors.New("Address must be less than 200 characters")
	}
	return address, nil
}
