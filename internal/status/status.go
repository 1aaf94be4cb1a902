package status

import "errors"

var (
	ErrTierDisabled     = errors.New("tier: tier is disabled")
	ErrTierSoldOut      = errors.New("tier: no remaining availability")
	ErrEmptySelection   = errors.New("checkout: no tickets selected")
	ErrMissingContact   = errors.New("checkout: required contact fields missing")
	ErrInvalidEmail     = errors.New("checkout: email address is not well formed")
	ErrMissingProof     = errors.New("checkout: payment proof not attached")
	ErrBadTransition    = errors.New("checkout: transition not allowed from current step")
	ErrDraftNotFound    = errors.New("checkout: draft not found or expired")
	ErrProofTooLarge    = errors.New("proof: file exceeds the 12 MB limit")
	ErrProofBadType     = errors.New("proof: file must be JPEG, PNG, WebP or PDF")
	ErrCapacityExceeded = errors.New("tier: committed quantity would exceed capacity")
)
