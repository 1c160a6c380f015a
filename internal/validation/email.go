package validation

import (
	"errors"
	"fmt"
	"net/mail"
)

// ValidateEmail checks a bare address. Display names ("Ada <ada@x.org>") are
// rejected since the address is compared verbatim against form responses.
func ValidateEmail(email string) error {
	// RFC 5321: total max 254 with @
	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	if email == "" {
		return errors.New("email address is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errors.New("invalid email address format")
	}
	if addr.Address != email {
		return errors.New("email address must not include a display name")
	}

	return nil
}

// ValidateEmails checks every entry of a configured list, naming the first
// offender and the setting it came from.
func ValidateEmails(key string, emails []string) error {
	for _, email := range emails {
		err := ValidateEmail(email)
		if err != nil {
			return fmt.Errorf("%s: %q: %w", key, email, err)
		}
	}
	return nil
}
