package services

import (
	"testing"
	"time"

	"booking-system/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectionWith(quantity int) *TicketSelection {
	sel := NewTicketSelection(nil)
	sel.SetQuantity(testTier("general", 500, 100, 0, true), quantity)
	return sel
}

func validContact() ContactDetails {
	return ContactDetails{
		Name:  "Asha Rao",
		Phone: "9876543210",
		Email: "asha@example.com",
	}
}

func draftAtPayment(t *testing.T) Draft {
	t.Helper()

	draft := NewDraft("draft-1", "event-1", time.Now())
	draft, err := draft.WithSelection(selectionWith(2))
	require.NoError(t, err)
	draft, err = draft.ContinueToDetails()
	require.NoError(t, err)
	draft, err = draft.WithContact(validContact())
	require.NoError(t, err)
	draft, err = draft.ContinueToPayment()
	require.NoError(t, err)
	return draft
}

func TestDraft_HappyPath(t *testing.T) {
	draft := NewDraft("draft-1", "event-1", time.Now())
	assert.Equal(t, StepSelecting, draft.Step)

	draft, err := draft.WithSelection(selectionWith(2))
	require.NoError(t, err)

	draft, err = draft.ContinueToDetails()
	require.NoError(t, err)
	assert.Equal(t, StepDetails, draft.Step)

	draft, err = draft.WithContact(validContact())
	require.NoError(t, err)

	draft, err = draft.ContinueToPayment()
	require.NoError(t, err)
	assert.Equal(t, StepPayment, draft.Step)

	draft, err = draft.Confirm("proof.jpg", "CEABCD1234")
	require.NoError(t, err)
	assert.Equal(t, StepConfirmed, draft.Step)
	assert.Equal(t, "proof.jpg", draft.ProofFile)
	assert.Equal(t, "CEABCD1234", draft.Reference)
}

func TestDraft_ContinueToDetails_EmptySelection(t *testing.T) {
	draft := NewDraft("draft-1", "event-1", time.Now())

	_, err := draft.ContinueToDetails()

	assert.ErrorIs(t, err, status.ErrEmptySelection)
}

func TestDraft_WithSelection_OnlyWhileSelecting(t *testing.T) {
	draft := NewDraft("draft-1", "event-1", time.Now())
	draft, err := draft.WithSelection(selectionWith(1))
	require.NoError(t, err)
	draft, err = draft.ContinueToDetails()
	require.NoError(t, err)

	_, err = draft.WithSelection(selectionWith(5))

	assert.ErrorIs(t, err, status.ErrBadTransition)
}

func TestDraft_ContinueToPayment_MissingContact(t *testing.T) {
	draft := NewDraft("draft-1", "event-1", time.Now())
	draft, _ = draft.WithSelection(selectionWith(1))
	draft, _ = draft.ContinueToDetails()

	_, err := draft.ContinueToPayment()

	assert.ErrorIs(t, err, status.ErrMissingContact)
}

func TestDraft_ContinueToPayment_InvalidEmail(t *testing.T) {
	draft := NewDraft("draft-1", "event-1", time.Now())
	draft, _ = draft.WithSelection(selectionWith(1))
	draft, _ = draft.ContinueToDetails()
	draft, _ = draft.WithContact(ContactDetails{
		Name:  "Asha Rao",
		Phone: "9876543210",
		Email: "not-an-email",
	})

	_, err := draft.ContinueToPayment()

	assert.ErrorIs(t, err, status.ErrInvalidEmail)
}

func TestDraft_Back_PreservesEnteredData(t *testing.T) {
	draft := draftAtPayment(t)

	draft, err := draft.Back()
	require.NoError(t, err)
	assert.Equal(t, StepDetails, draft.Step)
	assert.Equal(t, "Asha Rao", draft.Contact.Name)

	draft, err = draft.Back()
	require.NoError(t, err)
	assert.Equal(t, StepSelecting, draft.Step)
	assert.Equal(t, 2, draft.TicketCount())
	assert.Equal(t, "Asha Rao", draft.Contact.Name)
}

func TestDraft_Back_FromSelecting(t *testing.T) {
	draft := NewDraft("draft-1", "event-1", time.Now())

	_, err := draft.Back()

	assert.ErrorIs(t, err, status.ErrBadTransition)
}

func TestDraft_Confirm_RequiresProof(t *testing.T) {
	draft := draftAtPayment(t)

	_, err := draft.Confirm("", "CEABCD1234")

	assert.ErrorIs(t, err, status.ErrMissingProof)
}

func TestDraft_Confirm_OnlyFromPayment(t *testing.T) {
	draft := NewDraft("draft-1", "event-1", time.Now())
	draft, _ = draft.WithSelection(selectionWith(1))
	draft, _ = draft.ContinueToDetails()

	_, err := draft.Confirm("proof.jpg", "CEABCD1234")

	assert.ErrorIs(t, err, status.ErrBadTransition)
}

func TestDraft_TransitionsDoNotMutateReceiver(t *testing.T) {
	draft := NewDraft("draft-1", "event-1", time.Now())
	draft, _ = draft.WithSelection(selectionWith(1))

	next, err := draft.ContinueToDetails()
	require.NoError(t, err)

	assert.Equal(t, StepSelecting, draft.Step)
	assert.Equal(t, StepDetails, next.Step)
}

func TestDraft_Totals(t *testing.T) {
	draft := NewDraft("draft-1", "event-1", time.Now())
	sel := NewTicketSelection(nil)
	sel.SetQuantity(testTier("early", 500, 100, 0, true), 2)
	sel.SetQuantity(testTier("vip", 1200, 20, 0, true), 1)
	draft, err := draft.WithSelection(sel)
	require.NoError(t, err)

	assert.Equal(t, "2200", draft.Subtotal().String())
	assert.Equal(t, "2220", draft.Total(DefaultPlatformFee).String())
}

func TestContactDetails_Validate(t *testing.T) {
	tests := []struct {
		name    string
		contact ContactDetails
		wantErr error
	}{
		{"valid", validContact(), nil},
		{"instagram optional", ContactDetails{Name: "A", Phone: "1", Email: "a@b.co"}, nil},
		{"missing name", ContactDetails{Phone: "1", Email: "a@b.co"}, status.ErrMissingContact},
		{"missing phone", ContactDetails{Name: "A", Email: "a@b.co"}, status.ErrMissingContact},
		{"missing email", ContactDetails{Name: "A", Phone: "1"}, status.ErrMissingContact},
		{"bad email", ContactDetails{Name: "A", Phone: "1", Email: "nope"}, status.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.contact.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
