package service

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	countryCode  = "254"
	trunkPrefix  = '0'
	msisdnDigits = 12
)

// ErrInvalidPhoneNumber is returned when input cannot be normalized to an MSISDN.
var ErrInvalidPhoneNumber = errors.New("invalid phone number")

// NormalizePhone turns local or international input into a 12-digit MSISDN.
//
// Whitespace, hyphens and parentheses are stripped and a leading '+' is
// dropped. A leading trunk '0' is replaced with the country code, so
// "0712 345 678" and "+254712345678" both become "254712345678".
func NormalizePhone(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || r == '(' || r == ')' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	cleaned = strings.TrimPrefix(cleaned, "+")

	if len(cleaned) > 0 && cleaned[0] == trunkPrefix {
		cleaned = countryCode + cleaned[1:]
	}

	if len(cleaned) != msisdnDigits {
		return "", ErrInvalidPhoneNumber
	}
	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] < '0' || cleaned[i] > '9' {
			return "", ErrInvalidPhoneNumber
		}
	}

	return cleaned, nil
}

// ValidateAmount checks that an optional amount is not negative.
func ValidateAmount(amount *decimal.Decimal) error {
	if amount != nil && amount.IsNegative() {
		return errors.New("amount cannot be negative")
	}
	return nil
}
