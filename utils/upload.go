package utils

import (
	"net/http"

	"booking-system/internal/status"
)

// Accepted payment proof content types. Everything else is rejected
// before any storage write happens.
var allowedProofTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

const MaxProofSize = 12 * 1024 * 1024

// ValidateProof checks a payment proof upload against the accepted types
// and the size limit. head should hold the first bytes of the file (512
// are enough for sniffing).
func ValidateProof(head []byte, size int64, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxProofSize
	}
	if size <= 0 || size > maxSize {
		return status.ErrProofTooLarge
	}

	contentType := http.DetectContentType(head)
	if !allowedProofTypes[contentType] {
		return status.ErrProofBadType
	}

	return nil
}
