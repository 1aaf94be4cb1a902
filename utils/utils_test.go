package utils

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"booking-system/internal/status"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Circuit Breaker Tests

func TestCircuitBreaker_NewCircuitBreaker(t *testing.T) {
	cb := NewCircuitBreaker("test")

	assert.Equal(t, "test", cb.name)
	assert.Equal(t, uint32(100), cb.maxRequests)
	assert.Equal(t, 60*time.Second, cb.interval)
	assert.Equal(t, 60*time.Second, cb.timeout)
	assert.Equal(t, 0.6, cb.failureRatio)
	assert.Equal(t, StateClosed, cb.state)
}

func TestCircuitBreaker_ExecuteSuccess(t *testing.T) {
	cb := NewCircuitBreaker("test")
	ctx := context.Background()

	result, err := cb.Execute(ctx, func() (any, error) {
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, StateClosed, cb.state)
	assert.Equal(t, uint32(1), cb.counts.Requests)
	assert.Equal(t, uint32(1), cb.counts.TotalSuccesses)
}

func TestCircuitBreaker_ExecuteFailure(t *testing.T) {
	cb := NewCircuitBreaker("test")
	ctx := context.Background()

	expectedError := errors.New("publish failed")
	result, err := cb.Execute(ctx, func() (any, error) {
		return nil, expectedError
	})

	assert.Equal(t, expectedError, err)
	assert.Nil(t, result)
	assert.Equal(t, uint32(1), cb.counts.TotalFailures)
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	cb := NewCircuitBreaker("test")
	cb.maxRequests = 5
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		cb.Execute(ctx, func() (any, error) {
			return nil, errors.New("failure")
		})
	}

	assert.Equal(t, StateOpen, cb.state)

	_, err := cb.Execute(ctx, func() (any, error) {
		return "should not run", nil
	})
	assert.Error(t, err)
}

// Code Generation Tests

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(8)

	require.NoError(t, err)
	assert.Len(t, code, 16)
	assert.Equal(t, strings.ToUpper(code), code)
}

func TestGenerateCode_Unique(t *testing.T) {
	a, err := GenerateCode(8)
	require.NoError(t, err)
	b, err := GenerateCode(8)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBookingReference(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	ref, err := BookingReference(now)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "CE"))
	// "CE" + base36 millis + 4 hex chars
	ts := strings.ToUpper(strconv36(now.UnixMilli()))
	assert.True(t, strings.HasPrefix(ref[2:], ts))
	assert.Len(t, ref, 2+len(ts)+4)
}

func strconv36(v int64) string {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	if v == 0 {
		return "0"
	}
	var out []byte
	for v > 0 {
		out = append([]byte{digits[v%36]}, out...)
		v /= 36
	}
	return string(out)
}

// Currency Formatting Tests

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount decimal.Decimal
		want   string
	}{
		{decimal.Zero, "₹0.00"},
		{decimal.NewFromInt(500), "₹500.00"},
		{decimal.NewFromInt(2220), "₹2,220.00"},
		{decimal.NewFromFloat(123456.5), "₹1,23,456.50"},
		{decimal.NewFromInt(10000000), "₹1,00,00,000.00"},
		{decimal.NewFromInt(-2220), "-₹2,220.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatINR(tt.amount))
	}
}

// Proof Validation Tests

var pngHead = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func TestValidateProof_AcceptedTypes(t *testing.T) {
	jpegHead := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	pdfHead := []byte("%PDF-1.7")
	webpHead := []byte("RIFF\x00\x00\x00\x00WEBPVP8 ")

	assert.NoError(t, ValidateProof(pngHead, 1024, MaxProofSize))
	assert.NoError(t, ValidateProof(jpegHead, 1024, MaxProofSize))
	assert.NoError(t, ValidateProof(pdfHead, 1024, MaxProofSize))
	assert.NoError(t, ValidateProof(webpHead, 1024, MaxProofSize))
}

func TestValidateProof_RejectsOtherTypes(t *testing.T) {
	err := ValidateProof([]byte("just some text"), 1024, MaxProofSize)

	assert.ErrorIs(t, err, status.ErrProofBadType)
}

func TestValidateProof_RejectsOversize(t *testing.T) {
	err := ValidateProof(pngHead, MaxProofSize+1, MaxProofSize)

	assert.ErrorIs(t, err, status.ErrProofTooLarge)
}

func TestValidateProof_RejectsEmpty(t *testing.T) {
	err := ValidateProof(nil, 0, MaxProofSize)

	assert.ErrorIs(t, err, status.ErrProofTooLarge)
}
