package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FormatAmount renders a money value for display. This is the only place
// amounts are rounded; internal arithmetic stays exact.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// GenerateReceiptNumber returns a unique, human-sortable receipt number.
func GenerateReceiptNumber() string {
	datePart := time.Now().UTC().Format("20060102-150405")
	suffix := strings.Split(uuid.NewString(), "-")[0]

	return fmt.Sprintf("RCP-%s-%s", datePart, suffix)
}

// NormalizePhoneIN strips separators and normalizes an Indian mobile number
// to its +91 form. Inputs that already carry a country code pass through.
func NormalizePhoneIN(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, phone)

	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	if strings.HasPrefix(cleaned, "0") {
		cleaned = strings.TrimPrefix(cleaned, "0")
	}
	if len(cleaned) == 10 {
		return "+91" + cleaned
	}
	return cleaned
}
