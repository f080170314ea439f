package card

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// NumberLength is the fixed length of a Savora card number.
const NumberLength = 16

// Identity is the display card issued to a loyalty account. The number is a
// display credential, not a real PAN; it is generated Luhn-valid so payment
// validation accepts the account's own card.
type Identity struct {
	Number      string
	CVC         string
	ExpiryMonth int
	ExpiryYear  int
}

// Generate issues a fresh card identity valid for three years from now.
func Generate(now time.Time) Identity {
	digits := make([]byte, NumberLength)
	for i := 0; i < NumberLength-1; i++ {
		digits[i] = byte('0' + rand.Intn(10))
	}
	digits[NumberLength-1] = checkDigit(digits[:NumberLength-1])

	expiry := now.AddDate(3, 0, 0)
	return Identity{
		Number:      string(digits),
		CVC:         fmt.Sprintf("%03d", rand.Intn(1000)),
		ExpiryMonth: int(expiry.Month()),
		ExpiryYear:  expiry.Year(),
	}
}

// Expiry renders the expiry in the conventional MM/YY form.
func (i Identity) Expiry() string {
	return fmt.Sprintf("%02d/%02d", i.ExpiryMonth, i.ExpiryYear%100)
}

// ValidNumber reports whether the number is exactly 16 digits and passes the
// Luhn checksum.
func ValidNumber(number string) bool {
	if len(number) != NumberLength {
		return false
	}
	sum := 0
	for i := 0; i < NumberLength; i++ {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		// For an even-length number every digit at an even index is doubled.
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}

// checkDigit computes the trailing Luhn check digit for a 15-digit prefix.
func checkDigit(prefix []byte) byte {
	sum := 0
	for i, c := range prefix {
		d := int(c - '0')
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10)
}

// Format groups the card number into blocks of four separated by spaces.
func Format(number string) string {
	var b strings.Builder
	for i := 0; i < len(number); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 4
		if end > len(number) {
			end = len(number)
		}
		b.WriteString(number[i:end])
	}
	return b.String()
}

// Mask hides all but the last four digits. Any surface rendering a card
// after creation goes through this.
func Mask(number string) string {
	if len(number) < 4 {
		return number
	}
	return "•••• •••• •••• " + number[len(number)-4:]
}
