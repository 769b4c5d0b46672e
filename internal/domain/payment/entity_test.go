package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDebtPayment(t *testing.T) {
	p, err := NewDebtPayment("cust-1", "sale-1", 60.0, MethodCash, "primeira parcela", time.Now())

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "cust-1", p.CustomerID)
	assert.Equal(t, "sale-1", p.SaleID)
	assert.Equal(t, 60.0, p.Amount)
	assert.Equal(t, MethodCash, p.PaymentMethod)
}

func TestNewDebtPaymentValidation(t *testing.T) {
	t.Run("cliente vazio", func(t *testing.T) {
		_, err := NewDebtPayment("", "", 10, MethodCash, "", time.Now())
		assert.ErrorIs(t, err, ErrEmptyCustomer)
	})

	t.Run("valor zero", func(t *testing.T) {
		_, err := NewDebtPayment("cust-1", "", 0, MethodCash, "", time.Now())
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("valor negativo", func(t *testing.T) {
		_, err := NewDebtPayment("cust-1", "", -10, MethodCash, "", time.Now())
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("forma inválida", func(t *testing.T) {
		_, err := NewDebtPayment("cust-1", "", 10, "CHEQUE", "", time.Now())
		assert.ErrorIs(t, err, ErrInvalidMethod)
	})
}

func TestNewDebtPaymentDefaultsPaymentDate(t *testing.T) {
	p, err := NewDebtPayment("cust-1", "", 10, MethodCard, "", time.Time{})

	require.NoError(t, err)
	assert.False(t, p.PaymentDate.IsZero())
}

func TestMethodIsValid(t *testing.T) {
	assert.True(t, MethodCash.IsValid())
	assert.True(t, MethodBankTransfer.IsValid())
	assert.True(t, MethodCard.IsValid())
	assert.False(t, Method("CHEQUE").IsValid())
}
