package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	b, err := NewBooking("Maria Santos", time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), decimal.NewFromInt(5000))
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	b := newTestBooking(t)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, 1, b.Version)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), b.EventDate)

	_, err := NewBooking(" ", time.Now(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = NewBooking("Maria", time.Time{}, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = NewBooking("Maria", time.Now(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestBooking_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		wantErr error
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, nil},
		{"pending to cancelled", StatusPending, StatusCancelled, nil},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, nil},
		{"confirmed to confirmed", StatusConfirmed, StatusConfirmed, shared.ErrInvalidState},
		{"completed to cancelled", StatusCompleted, StatusCancelled, shared.ErrInvalidState},
		{"cancelled to confirmed", StatusCancelled, StatusConfirmed, shared.ErrInvalidState},
		{"explicit complete", StatusConfirmed, StatusCompleted, shared.ErrInvalidState},
		{"unknown target", StatusPending, Status("Archived"), shared.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBooking(t)
			b.Status = tt.from

			err := b.TransitionTo(tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, b.Status)
				assert.Equal(t, 1, b.Version)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, b.Status)
			assert.Equal(t, 2, b.Version)
		})
	}
}

func TestBooking_ApplySettlement(t *testing.T) {
	t.Run("settling payment completes", func(t *testing.T) {
		b := newTestBooking(t)
		res := ledger.ComputeRunningBalance(b.ContractAmount,
			[]decimal.Decimal{decimal.NewFromInt(2000), decimal.NewFromInt(2000)},
			decimal.NewFromInt(1000), ledger.PaymentKindFull)

		changed, err := b.ApplySettlement(res)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, StatusCompleted, b.Status)
		assert.True(t, b.Status.IsTerminal())
	})

	t.Run("partial payment leaves status", func(t *testing.T) {
		b := newTestBooking(t)
		res := ledger.ComputeRunningBalance(b.ContractAmount, nil, decimal.NewFromInt(1000), ledger.PaymentKindPartial)

		changed, err := b.ApplySettlement(res)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, StatusPending, b.Status)
	})

	t.Run("completed booking cannot complete again", func(t *testing.T) {
		b := newTestBooking(t)
		b.Status = StatusCompleted

		_, err := b.ApplySettlement(ledger.BalanceResult{Completes: true})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("cancelled booking refuses payments", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Cancel())
		assert.False(t, b.CanAcceptPayment())
	})
}
