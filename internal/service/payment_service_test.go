package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/pdv-bebidas/internal/domain/payment"
)

func setupPaymentService(t *testing.T) (*PaymentService, *mockPaymentRepository, *mockCustomerRepository) {
	t.Helper()
	paymentRepo := newMockPaymentRepository()
	customerRepo := newMockCustomerRepository()
	svc := NewPaymentService(paymentRepo, customerRepo, noopLogger{})
	return svc, paymentRepo, customerRepo
}

func TestRecordPayment(t *testing.T) {
	svc, paymentRepo, customerRepo := setupPaymentService(t)
	ctx := context.Background()

	c := seedCustomer(t, customerRepo, "Alice")
	require.NoError(t, customerRepo.AdjustCredit(ctx, c.ID, 100))

	p, err := payment.NewDebtPayment(c.ID, "", 60, payment.MethodCash, "", time.Now())
	require.NoError(t, err)

	recorded, err := svc.RecordPayment(ctx, p)

	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.Equal(t, 40.0, customerRepo.balanceOf(c.ID))

	stored, err := paymentRepo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, stored.Amount)
}

func TestRecordPaymentInsertFailureLeavesBalanceUntouched(t *testing.T) {
	svc, paymentRepo, customerRepo := setupPaymentService(t)
	ctx := context.Background()

	c := seedCustomer(t, customerRepo, "Bruno")
	require.NoError(t, customerRepo.AdjustCredit(ctx, c.ID, 80))

	paymentRepo.createErr = errors.New("falha de escrita")

	p, err := payment.NewDebtPayment(c.ID, "", 30, payment.MethodCard, "", time.Now())
	require.NoError(t, err)

	recorded, err := svc.RecordPayment(ctx, p)

	require.Error(t, err)
	assert.Nil(t, recorded)
	assert.Equal(t, 80.0, customerRepo.balanceOf(c.ID))
}

func TestRecordPaymentAdjustFailureKeepsPaymentRow(t *testing.T) {
	svc, paymentRepo, customerRepo := setupPaymentService(t)
	ctx := context.Background()

	c := seedCustomer(t, customerRepo, "Carla")
	require.NoError(t, customerRepo.AdjustCredit(ctx, c.ID, 50))
	customerRepo.adjustErr[c.ID] = errors.New("procedure indisponível")

	p, err := payment.NewDebtPayment(c.ID, "", 20, payment.MethodBankTransfer, "", time.Now())
	require.NoError(t, err)

	recorded, err := svc.RecordPayment(ctx, p)

	require.Error(t, err)
	assert.Nil(t, recorded)

	// O pagamento gravado no passo 1 permanece; o saldo ficou sem abater
	_, findErr := paymentRepo.FindByID(ctx, p.ID)
	assert.NoError(t, findErr)
	assert.Equal(t, 50.0, customerRepo.store[c.ID].CreditBalance)
}
