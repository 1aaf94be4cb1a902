package services

import (
	"time"

	"booking-system/internal/status"
	"booking-system/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// Step is one stop in the linear checkout flow. A draft only ever moves
// selecting -> details -> payment -> confirmed, with back navigation
// allowed from details and payment.
type Step string

const (
	StepSelecting Step = "selecting"
	StepDetails   Step = "details"
	StepPayment   Step = "payment"
	StepConfirmed Step = "confirmed"
)

type ContactDetails struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Instagram string `json:"instagram,omitempty"`
}

func (c ContactDetails) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Phone, validation.Required),
		validation.Field(&c.Email, validation.Required),
	)
	if err != nil {
		return status.ErrMissingContact
	}
	if err := validation.Validate(c.Email, is.EmailFormat); err != nil {
		return status.ErrInvalidEmail
	}
	return nil
}

// Draft is a snapshot of an in-progress booking. Transition methods
// return a new snapshot instead of mutating in place, so a half-applied
// transition can never be observed.
type Draft struct {
	ID        string                `json:"id"`
	EventID   string                `json:"event_id"`
	Step      Step                  `json:"step"`
	Lines     []models.SelectedLine `json:"lines,omitempty"`
	Contact   ContactDetails        `json:"contact"`
	ProofFile string                `json:"proof_file,omitempty"`
	Reference string                `json:"reference,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

func NewDraft(id, eventID string, now time.Time) Draft {
	return Draft{
		ID:        id,
		EventID:   eventID,
		Step:      StepSelecting,
		CreatedAt: now,
	}
}

// WithSelection replaces the draft's ticket lines. Only legal while the
// buyer is still on the selection step.
func (d Draft) WithSelection(sel *TicketSelection) (Draft, error) {
	if d.Step != StepSelecting {
		return d, status.ErrBadTransition
	}
	d.Lines = sel.Lines()
	return d, nil
}

// ContinueToDetails moves selecting -> details. Blocked until at least
// one line with a positive quantity exists.
func (d Draft) ContinueToDetails() (Draft, error) {
	if d.Step != StepSelecting {
		return d, status.ErrBadTransition
	}
	if d.TicketCount() == 0 {
		return d, status.ErrEmptySelection
	}
	d.Step = StepDetails
	return d, nil
}

// WithContact records the buyer's contact fields while on the details
// step. Optional fields are accepted as given.
func (d Draft) WithContact(contact ContactDetails) (Draft, error) {
	if d.Step != StepDetails {
		return d, status.ErrBadTransition
	}
	d.Contact = contact
	return d, nil
}

// ContinueToPayment moves details -> payment once name, phone and a well
// formed email are present.
func (d Draft) ContinueToPayment() (Draft, error) {
	if d.Step != StepDetails {
		return d, status.ErrBadTransition
	}
	if err := d.Contact.Validate(); err != nil {
		return d, err
	}
	d.Step = StepPayment
	return d, nil
}

// Back steps the flow one stop towards selection, keeping everything the
// buyer already entered.
func (d Draft) Back() (Draft, error) {
	switch d.Step {
	case StepDetails:
		d.Step = StepSelecting
	case StepPayment:
		d.Step = StepDetails
	default:
		return d, status.ErrBadTransition
	}
	return d, nil
}

// Confirm moves payment -> confirmed. The stored proof file name and the
// generated booking reference are pinned on the final snapshot.
func (d Draft) Confirm(proofFile, reference string) (Draft, error) {
	if d.Step != StepPayment {
		return d, status.ErrBadTransition
	}
	if proofFile == "" {
		return d, status.ErrMissingProof
	}
	d.Step = StepConfirmed
	d.ProofFile = proofFile
	d.Reference = reference
	return d, nil
}

func (d Draft) TicketCount() int {
	count := 0
	for _, line := range d.Lines {
		count += line.Quantity
	}
	return count
}

func (d Draft) Subtotal() decimal.Decimal {
	return Subtotal(d.Lines)
}

func (d Draft) Total(fee decimal.Decimal) decimal.Decimal {
	return TotalWithFee(d.Subtotal(), fee)
}
