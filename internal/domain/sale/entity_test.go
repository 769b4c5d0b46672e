package sale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	item, err := NewItem("prod-1", "Água 500ml", 2, 5.0, 10.0)

	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "prod-1", item.ProductID)
	assert.Equal(t, "Água 500ml", item.ProductName)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 10.0, item.TotalPrice)
}

func TestNewItemValidation(t *testing.T) {
	t.Run("quantidade zero", func(t *testing.T) {
		_, err := NewItem("prod-1", "Água", 0, 5.0, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("quantidade negativa", func(t *testing.T) {
		_, err := NewItem("prod-1", "Água", -2, 5.0, -10)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("preço unitário negativo", func(t *testing.T) {
		_, err := NewItem("prod-1", "Água", 1, -5.0, -5)
		assert.ErrorIs(t, err, ErrInvalidUnitPrice)
	})

	t.Run("total da linha é aceito como veio", func(t *testing.T) {
		// O total informado não é reconferido contra quantidade x preço
		item, err := NewItem("prod-1", "Água", 2, 5.0, 99.0)
		require.NoError(t, err)
		assert.Equal(t, 99.0, item.TotalPrice)
	})
}

func TestNewSale(t *testing.T) {
	item, err := NewItem("prod-1", "Água", 2, 50.0, 100.0)
	require.NoError(t, err)

	sl, err := NewSale("TXN-1", "cust-1", "Alice", 100.0, PaymentCredit, time.Now(), []Item{*item})

	require.NoError(t, err)
	assert.NotEmpty(t, sl.ID)
	assert.Equal(t, "TXN-1", sl.TransactionID)
	assert.Equal(t, "Alice", sl.CustomerName)
	assert.True(t, sl.IsCredit())

	// Os itens recebem o ID da venda
	require.Len(t, sl.Items, 1)
	assert.Equal(t, sl.ID, sl.Items[0].SaleID)
}

func TestNewSaleValidation(t *testing.T) {
	item, err := NewItem("prod-1", "Água", 1, 5.0, 5.0)
	require.NoError(t, err)

	t.Run("cliente vazio", func(t *testing.T) {
		_, err := NewSale("", "", "Alice", 5.0, PaymentCash, time.Now(), []Item{*item})
		assert.ErrorIs(t, err, ErrEmptyCustomer)
	})

	t.Run("forma de pagamento inválida", func(t *testing.T) {
		_, err := NewSale("", "cust-1", "Alice", 5.0, "PIX", time.Now(), []Item{*item})
		assert.ErrorIs(t, err, ErrInvalidPaymentType)
	})

	t.Run("sem itens", func(t *testing.T) {
		_, err := NewSale("", "cust-1", "Alice", 0, PaymentCash, time.Now(), nil)
		assert.ErrorIs(t, err, ErrEmptyItems)
	})
}

func TestNewSaleDefaultsTransactionDate(t *testing.T) {
	item, err := NewItem("prod-1", "Água", 1, 5.0, 5.0)
	require.NoError(t, err)

	sl, err := NewSale("", "cust-1", "Alice", 5.0, PaymentCash, time.Time{}, []Item{*item})

	require.NoError(t, err)
	assert.False(t, sl.TransactionDate.IsZero())
}

func TestItemsTotal(t *testing.T) {
	sl := &Sale{Items: []Item{
		{TotalPrice: 10.0},
		{TotalPrice: 12.5},
	}}

	assert.Equal(t, 22.5, sl.ItemsTotal())
}

func TestPaymentTypeIsValid(t *testing.T) {
	assert.True(t, PaymentCash.IsValid())
	assert.True(t, PaymentCredit.IsValid())
	assert.False(t, PaymentType("PIX").IsValid())
	assert.False(t, PaymentType("").IsValid())
}
