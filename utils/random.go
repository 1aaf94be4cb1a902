package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

func GenerateCode(n int) (string, error) {
	// Make a slice of nBytes random bytes.
	byt := make([]byte, n)

	// Read into the slice.
	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	// Return the hexadecimal string.
	return strings.ToUpper(hex.EncodeToString(byt)), nil
}

// BookingReference builds a human readable booking code: a "CE" prefix,
// a base36 time component and a short random suffix. Uniqueness is not
// enforced here; the bookings collection carries a unique index on it.
func BookingReference(now time.Time) (string, error) {
	suffix, err := GenerateCode(2)
	if err != nil {
		return "", err
	}

	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return fmt.Sprintf("CE%s%s", ts, suffix), nil
}
