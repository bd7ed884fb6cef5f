package messaging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// FormatPhoneNumber normalises a raw phone number to E.164-ish form.
// Ten digits starting 6-9 are Indian mobiles; other ten-digit numbers are
// treated as North American.
func FormatPhoneNumber(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return ""
	}

	switch {
	case len(digits) == 10 && digits[0] >= '6' && digits[0] <= '9':
		return "+91" + digits
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) > 10:
		return "+" + digits
	}

	logrus.WithField("phone", raw).Warn("Phone number might be invalid")
	return "+91" + digits
}
