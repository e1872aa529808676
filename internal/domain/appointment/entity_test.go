package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backhomebarber/booking-api/internal/httperr"
	"github.com/backhomebarber/booking-api/internal/models"
)

func TestCancelTransitions(t *testing.T) {
	now := time.Now()

	tests := []struct {
		from    Status
		wantErr bool
	}{
		{StatusPending, false},
		{StatusConfirmed, false},
		{StatusInProgress, true},
		{StatusCompleted, true},
		{StatusCancelled, true},
		{StatusNoShow, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			ap := &models.Appointment{Status: string(tt.from)}

			err := Cancel(ap, now)

			if tt.wantErr {
				assert.True(t, httperr.IsBusiness(err, "invalid_state"))
				assert.Equal(t, string(tt.from), ap.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(StatusCancelled), ap.Status)
			require.NotNil(t, ap.CancelledAt)
			assert.Equal(t, now, *ap.CancelledAt)
		})
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusCancelled)}

	assert.Error(t, Confirm(ap, now))
	assert.Error(t, Complete(ap, now))
	assert.Error(t, ApplyPaymentSuccess(ap, "stripe", "pi_123"))
	assert.Error(t, ApplyPaymentFailure(ap, "stripe"))
	assert.Error(t, ApplyPaymentPending(ap, "cash"))

	assert.Equal(t, string(StatusCancelled), ap.Status)
}

func TestCompleteRequiresPayment(t *testing.T) {
	now := time.Now()

	t.Run("unpaid confirmed is refused", func(t *testing.T) {
		ap := &models.Appointment{
			Status:        string(StatusConfirmed),
			PaymentStatus: string(PaymentUnpaid),
		}
		err := Complete(ap, now)
		assert.True(t, httperr.IsBusiness(err, "payment_required"))
	})

	t.Run("paid confirmed completes", func(t *testing.T) {
		ap := &models.Appointment{
			Status:        string(StatusConfirmed),
			PaymentStatus: string(PaymentPaid),
		}
		require.NoError(t, Complete(ap, now))
		assert.Equal(t, string(StatusCompleted), ap.Status)
		require.NotNil(t, ap.CompletedAt)
	})

	t.Run("cash awaiting settlement completes", func(t *testing.T) {
		method := "cash"
		ap := &models.Appointment{
			Status:        string(StatusConfirmed),
			PaymentStatus: string(PaymentPending),
			PaymentMethod: &method,
		}
		require.NoError(t, Complete(ap, now))
		assert.Equal(t, string(StatusCompleted), ap.Status)
	})

	t.Run("electronic pending does not complete", func(t *testing.T) {
		method := "stripe"
		ap := &models.Appointment{
			Status:        string(StatusConfirmed),
			PaymentStatus: string(PaymentPending),
			PaymentMethod: &method,
		}
		err := Complete(ap, now)
		assert.True(t, httperr.IsBusiness(err, "payment_required"))
	})
}

func TestApplyPaymentSuccess(t *testing.T) {
	t.Run("records method and reference", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}

		require.NoError(t, ApplyPaymentSuccess(ap, "stripe", "pi_abc"))

		assert.Equal(t, string(PaymentPaid), ap.PaymentStatus)
		require.NotNil(t, ap.PaymentMethod)
		require.NotNil(t, ap.PaymentID)
		assert.Equal(t, "stripe", *ap.PaymentMethod)
		assert.Equal(t, "pi_abc", *ap.PaymentID)
	})

	t.Run("paid without reference is refused", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}

		err := ApplyPaymentSuccess(ap, "stripe", "")

		assert.True(t, httperr.IsBusiness(err, "missing_payment_reference"))
		assert.Equal(t, "", ap.PaymentStatus)
		assert.Nil(t, ap.PaymentID)
	})

	t.Run("paid without method is refused", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}

		err := ApplyPaymentSuccess(ap, "", "pi_abc")

		assert.True(t, httperr.IsBusiness(err, "missing_payment_reference"))
	})
}

func TestApplyPaymentFailureKeepsPendingStatus(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}

	require.NoError(t, ApplyPaymentFailure(ap, "paypal"))

	// agendamento segue pending: o usuário pode tentar pagar de novo
	assert.Equal(t, string(StatusPending), ap.Status)
	assert.Equal(t, string(PaymentFailed), ap.PaymentStatus)
	assert.Nil(t, ap.PaymentID)
}
