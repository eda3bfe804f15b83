package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// Normalize parses a guest-supplied mobile number and returns it in E.164
// form ("+919876543210"). Bare national numbers are interpreted against
// defaultRegion.
func Normalize(raw, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhone
	}

	number, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil {
		return "", ErrInvalidPhone
	}

	if !phonenumbers.IsValidNumber(number) {
		return "", ErrInvalidPhone
	}

	return fmt.Sprintf("+%d%d", number.GetCountryCode(), number.GetNationalNumber()), nil
}
