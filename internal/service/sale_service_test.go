package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/pdv-bebidas/internal/adapter/repository"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/customer"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/payment"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/product"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/sale"
	"github.com/hugohenrick/pdv-bebidas/pkg/workflow"
)

func setupSaleService(t *testing.T) (*SaleService, *mockSaleRepository, *mockProductRepository, *mockCustomerRepository) {
	t.Helper()
	saleRepo := newMockSaleRepository()
	productRepo := newMockProductRepository()
	customerRepo := newMockCustomerRepository()
	svc := NewSaleService(saleRepo, productRepo, customerRepo, noopLogger{})
	return svc, saleRepo, productRepo, customerRepo
}

func seedProduct(t *testing.T, repo *mockProductRepository, name string, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(name, product.CategoryWater, stock)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func seedCustomer(t *testing.T, repo *mockCustomerRepository, name string) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(name, "", "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func buildSale(t *testing.T, c *customer.Customer, txID string, paymentType sale.PaymentType, items []sale.Item) *sale.Sale {
	t.Helper()
	var total float64
	for _, item := range items {
		total += item.TotalPrice
	}
	sl, err := sale.NewSale(txID, c.ID, c.Name, total, paymentType, time.Now(), items)
	require.NoError(t, err)
	return sl
}

func mustItem(t *testing.T, p *product.Product, quantity int, unitPrice float64) sale.Item {
	t.Helper()
	item, err := sale.NewItem(p.ID, p.Name, quantity, unitPrice, float64(quantity)*unitPrice)
	require.NoError(t, err)
	return *item
}

func TestCreateSaleCash(t *testing.T) {
	svc, saleRepo, productRepo, customerRepo := setupSaleService(t)
	ctx := context.Background()

	p := seedProduct(t, productRepo, "Água 500ml", 30)
	c := seedCustomer(t, customerRepo, "João")

	sl := buildSale(t, c, "TXN-CASH", sale.PaymentCash, []sale.Item{mustItem(t, p, 3, 5.0)})

	created, record, err := svc.CreateSale(ctx, sl)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Nil(t, created.Items)
	assert.False(t, record.HasFailures())

	// Estoque baixado, saldo do cliente intocado (pagamento à vista)
	assert.Equal(t, 27, productRepo.stockOf(p.ID))
	assert.Equal(t, 0.0, customerRepo.balanceOf(c.ID))

	stored, err := saleRepo.FindByIDWithItems(ctx, sl.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
}

func TestCreateSaleCredit(t *testing.T) {
	svc, _, productRepo, customerRepo := setupSaleService(t)
	ctx := context.Background()

	p := seedProduct(t, productRepo, "Água 500ml", 10)
	c := seedCustomer(t, customerRepo, "Alice")

	sl := buildSale(t, c, "TXN-1", sale.PaymentCredit, []sale.Item{mustItem(t, p, 2, 50.0)})

	_, record, err := svc.CreateSale(ctx, sl)

	require.NoError(t, err)
	assert.False(t, record.HasFailures())

	// Fiado: o total da venda vira saldo devedor do cliente
	assert.Equal(t, 8, productRepo.stockOf(p.ID))
	assert.Equal(t, 100.0, customerRepo.balanceOf(c.ID))
}

func TestCreateSaleDuplicateTransaction(t *testing.T) {
	svc, saleRepo, productRepo, customerRepo := setupSaleService(t)
	ctx := context.Background()

	p := seedProduct(t, productRepo, "Refrigerante", 50)
	c := seedCustomer(t, customerRepo, "Maria")

	first := buildSale(t, c, "TXN-DUP", sale.PaymentCash, []sale.Item{mustItem(t, p, 1, 8.0)})
	_, _, err := svc.CreateSale(ctx, first)
	require.NoError(t, err)

	second := buildSale(t, c, "TXN-DUP", sale.PaymentCredit, []sale.Item{mustItem(t, p, 5, 8.0)})
	_, record, err := svc.CreateSale(ctx, second)

	require.ErrorIs(t, err, ErrDuplicateTransaction)
	assert.True(t, record.HasFailures())

	// A colisão aborta no primeiro passo: nada da segunda venda é aplicado
	assert.Equal(t, 49, productRepo.stockOf(p.ID))
	assert.Equal(t, 0.0, customerRepo.balanceOf(c.ID))

	count, err := saleRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateSaleStockFailureIsLoggedOnly(t *testing.T) {
	svc, saleRepo, productRepo, customerRepo := setupSaleService(t)
	ctx := context.Background()

	p := seedProduct(t, productRepo, "Suco", 1)
	c := seedCustomer(t, customerRepo, "Pedro")

	// Quantidade maior que o estoque: a procedure recusa, o fluxo segue
	sl := buildSale(t, c, "TXN-LOW", sale.PaymentCredit, []sale.Item{mustItem(t, p, 5, 4.0)})

	created, record, err := svc.CreateSale(ctx, sl)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, record.HasFailures())
	require.Len(t, record.Failures(), 1)
	assert.Equal(t, "decrement_stock:"+p.ID, record.Failures()[0].Name)

	// Venda gravada, estoque intocado, fiado lançado mesmo assim
	assert.Equal(t, 1, productRepo.stockOf(p.ID))
	assert.Equal(t, 20.0, customerRepo.balanceOf(c.ID))

	_, err = saleRepo.FindByID(ctx, sl.ID)
	assert.NoError(t, err)
}

func TestCreateSaleItemInsertFailureKeepsSaleRow(t *testing.T) {
	svc, saleRepo, productRepo, customerRepo := setupSaleService(t)
	ctx := context.Background()

	p := seedProduct(t, productRepo, "Cerveja", 40)
	c := seedCustomer(t, customerRepo, "Rafael")

	saleRepo.createItemsErr = errors.New("falha de escrita")

	sl := buildSale(t, c, "TXN-ITEMS", sale.PaymentCredit, []sale.Item{mustItem(t, p, 2, 7.0)})

	created, record, err := svc.CreateSale(ctx, sl)

	require.Error(t, err)
	assert.Nil(t, created)
	assert.True(t, record.HasFailures())

	// O registro da venda do passo 1 permanece gravado; nenhum efeito
	// colateral foi aplicado
	_, findErr := saleRepo.FindByID(ctx, sl.ID)
	assert.NoError(t, findErr)
	assert.Equal(t, 40, productRepo.stockOf(p.ID))
	assert.Equal(t, 0.0, customerRepo.balanceOf(c.ID))
}

func TestCreateSaleCreditFailureIsLoggedOnly(t *testing.T) {
	svc, saleRepo, productRepo, customerRepo := setupSaleService(t)
	ctx := context.Background()

	p := seedProduct(t, productRepo, "Energético", 15)
	c := seedCustomer(t, customerRepo, "Bruno")
	customerRepo.adjustErr[c.ID] = errors.New("procedure indisponível")

	sl := buildSale(t, c, "TXN-CRED", sale.PaymentCredit, []sale.Item{mustItem(t, p, 2, 12.0)})

	created, record, err := svc.CreateSale(ctx, sl)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, record.HasFailures())
	require.Len(t, record.Failures(), 1)
	assert.Equal(t, "increment_credit", record.Failures()[0].Name)

	// A venda e a baixa de estoque valem; o fiado ficou pendente
	assert.Equal(t, 13, productRepo.stockOf(p.ID))
	assert.Equal(t, 0.0, customerRepo.balanceOf(c.ID))

	_, err = saleRepo.FindByID(ctx, sl.ID)
	assert.NoError(t, err)
}

func TestDeleteSaleRestoresStockAndCredit(t *testing.T) {
	svc, saleRepo, productRepo, customerRepo := setupSaleService(t)
	ctx := context.Background()

	p := seedProduct(t, productRepo, "Água 500ml", 10)
	c := seedCustomer(t, customerRepo, "Alice")

	sl := buildSale(t, c, "TXN-DEL", sale.PaymentCredit, []sale.Item{mustItem(t, p, 2, 50.0)})
	_, _, err := svc.CreateSale(ctx, sl)
	require.NoError(t, err)
	require.Equal(t, 8, productRepo.stockOf(p.ID))
	require.Equal(t, 100.0, customerRepo.balanceOf(c.ID))

	deleted, record, err := svc.DeleteSale(ctx, sl.ID)

	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.False(t, record.HasFailures())
	assert.Len(t, deleted.Items, 1)

	assert.Equal(t, 10, productRepo.stockOf(p.ID))
	assert.Equal(t, 0.0, customerRepo.balanceOf(c.ID))

	_, err = saleRepo.FindByID(ctx, sl.ID)
	assert.ErrorIs(t, err, repository.ErrSaleNotFound)
}

func TestDeleteSaleCreditClampsAtZero(t *testing.T) {
	svc, _, productRepo, customerRepo := setupSaleService(t)
	ctx := context.Background()

	p := seedProduct(t, productRepo, "Água 500ml", 10)
	c := seedCustomer(t, customerRepo, "Alice")

	// Venda fiado de 100, pagamento de 60 em seguida: saldo fica 40
	sl := buildSale(t, c, "TXN-CLAMP", sale.PaymentCredit, []sale.Item{mustItem(t, p, 2, 50.0)})
	_, _, err := svc.CreateSale(ctx, sl)
	require.NoError(t, err)
	require.NoError(t, customerRepo.AdjustCredit(ctx, c.ID, -60))
	require.Equal(t, 40.0, customerRepo.balanceOf(c.ID))

	// A exclusão abate os 100 da venda, mas o saldo trava em zero
	// (não fica -60)
	_, record, err := svc.DeleteSale(ctx, sl.ID)

	require.NoError(t, err)
	assert.False(t, record.HasFailures())
	assert.Equal(t, 0.0, customerRepo.balanceOf(c.ID))
	assert.Equal(t, 10, productRepo.stockOf(p.ID))
}

func TestDeleteSaleNotFound(t *testing.T) {
	svc, _, _, _ := setupSaleService(t)

	deleted, record, err := svc.DeleteSale(context.Background(), "inexistente")

	require.ErrorIs(t, err, repository.ErrSaleNotFound)
	assert.Nil(t, deleted)
	assert.True(t, record.HasFailures())
}

func TestDeleteSaleFallsBackToNonAtomicPath(t *testing.T) {
	svc, _, productRepo, customerRepo := setupSaleService(t)
	ctx := context.Background()

	p := seedProduct(t, productRepo, "Vinho", 20)
	c := seedCustomer(t, customerRepo, "Carla")

	sl := buildSale(t, c, "TXN-FB", sale.PaymentCredit, []sale.Item{mustItem(t, p, 4, 30.0)})
	_, _, err := svc.CreateSale(ctx, sl)
	require.NoError(t, err)
	require.Equal(t, 16, productRepo.stockOf(p.ID))
	require.Equal(t, 120.0, customerRepo.balanceOf(c.ID))

	// Procedures fora do ar: o estorno cai para leitura e escrita
	productRepo.adjustErr[p.ID] = errors.New("procedure indisponível")
	customerRepo.adjustErr[c.ID] = errors.New("procedure indisponível")

	_, record, err := svc.DeleteSale(ctx, sl.ID)

	require.NoError(t, err)
	assert.False(t, record.HasFailures())
	assert.Equal(t, 20, productRepo.stockOf(p.ID))
	assert.Equal(t, 0.0, customerRepo.balanceOf(c.ID))
}

func TestDeleteSaleRestoreFailureDoesNotAbort(t *testing.T) {
	svc, saleRepo, productRepo, customerRepo := setupSaleService(t)
	ctx := context.Background()

	p := seedProduct(t, productRepo, "Whisky", 12)
	c := seedCustomer(t, customerRepo, "Diego")

	sl := buildSale(t, c, "TXN-RF", sale.PaymentCash, []sale.Item{mustItem(t, p, 2, 90.0)})
	_, _, err := svc.CreateSale(ctx, sl)
	require.NoError(t, err)
	require.Equal(t, 10, productRepo.stockOf(p.ID))

	// Os dois caminhos de estorno falham: o passo fica registrado como
	// pendente e a exclusão segue mesmo assim
	productRepo.adjustErr[p.ID] = errors.New("procedure indisponível")
	productRepo.adjustNonAtomicErr[p.ID] = errors.New("banco indisponível")

	deleted, record, err := svc.DeleteSale(ctx, sl.ID)

	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.True(t, record.HasFailures())
	require.Len(t, record.Failures(), 1)
	assert.Equal(t, "restore_stock:"+p.ID, record.Failures()[0].Name)

	// Estoque não estornado, venda removida assim mesmo
	assert.Equal(t, 10, productRepo.stockOf(p.ID))
	_, err = saleRepo.FindByID(ctx, sl.ID)
	assert.ErrorIs(t, err, repository.ErrSaleNotFound)
}

func TestDeleteSaleItemRemovalFailureKeepsRestorations(t *testing.T) {
	svc, saleRepo, productRepo, customerRepo := setupSaleService(t)
	ctx := context.Background()

	p := seedProduct(t, productRepo, "Gin", 25)
	c := seedCustomer(t, customerRepo, "Elisa")

	sl := buildSale(t, c, "TXN-DI", sale.PaymentCredit, []sale.Item{mustItem(t, p, 3, 60.0)})
	_, _, err := svc.CreateSale(ctx, sl)
	require.NoError(t, err)

	saleRepo.deleteItemsErr = errors.New("falha de escrita")

	deleted, record, err := svc.DeleteSale(ctx, sl.ID)

	require.Error(t, err)
	assert.Nil(t, deleted)
	assert.True(t, record.HasFailures())

	// Os estornos já aplicados não são desfeitos; a venda permanece
	assert.Equal(t, 25, productRepo.stockOf(p.ID))
	assert.Equal(t, 0.0, customerRepo.balanceOf(c.ID))
	_, err = saleRepo.FindByID(ctx, sl.ID)
	assert.NoError(t, err)
}

func TestSaleAndPaymentLifecycle(t *testing.T) {
	svc, _, productRepo, customerRepo := setupSaleService(t)
	paymentSvc := NewPaymentService(newMockPaymentRepository(), customerRepo, noopLogger{})
	ctx := context.Background()

	// Alice começa sem dívida; venda fiado de 2 x 50
	water := seedProduct(t, productRepo, "Água 500ml", 10)
	alice := seedCustomer(t, customerRepo, "Alice")

	sl := buildSale(t, alice, "TXN-1", sale.PaymentCredit, []sale.Item{mustItem(t, water, 2, 50.0)})
	_, _, err := svc.CreateSale(ctx, sl)
	require.NoError(t, err)
	require.Equal(t, 8, productRepo.stockOf(water.ID))
	require.Equal(t, 100.0, customerRepo.balanceOf(alice.ID))

	// Pagamento de 60: saldo cai para 40
	pay, err := payment.NewDebtPayment(alice.ID, sl.ID, 60, payment.MethodCash, "", time.Now())
	require.NoError(t, err)
	_, err = paymentSvc.RecordPayment(ctx, pay)
	require.NoError(t, err)
	require.Equal(t, 40.0, customerRepo.balanceOf(alice.ID))

	// Exclusão da venda: estoque volta a 10 e o estorno de 100 trava o
	// saldo em zero em vez de deixá-lo em -60
	_, record, err := svc.DeleteSale(ctx, sl.ID)
	require.NoError(t, err)
	assert.False(t, record.HasFailures())
	assert.Equal(t, 10, productRepo.stockOf(water.ID))
	assert.Equal(t, 0.0, customerRepo.balanceOf(alice.ID))
}

func TestWorkflowRecordString(t *testing.T) {
	record := workflow.NewRecord("create_sale")
	record.StepOK("insert_sale")
	record.StepFailed("insert_items", errors.New("falha"))
	record.StepSkipped("increment_credit")

	s := record.String()
	assert.Contains(t, s, "create_sale:")
	assert.Contains(t, s, "insert_sale=ok")
	assert.Contains(t, s, "insert_items=failed(falha)")
	assert.Contains(t, s, "increment_credit=skipped")
}
