package service

import (
	"context"
	"time"

	"github.com/hugohenrick/pdv-bebidas/internal/adapter/repository"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/customer"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/payment"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/product"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/sale"
)

// Repositórios em memória para os testes dos serviços. Reproduzem o
// comportamento relevante dos adapters de banco: erros sentinela, clamp do
// saldo em zero e recusa de estoque negativo na procedure. Os campos *Err
// permitem injetar falhas em passos específicos dos fluxos.

type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}

type mockProductRepository struct {
	store map[string]*product.Product

	adjustErr          map[string]error // falha da procedure, por produto
	adjustNonAtomicErr map[string]error // falha do caminho de contingência, por produto
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		store:              make(map[string]*product.Product),
		adjustErr:          make(map[string]error),
		adjustNonAtomicErr: make(map[string]error),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, p *product.Product) error {
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProductRepository) FindByName(ctx context.Context, name string, limit, offset int) ([]*product.Product, error) {
	return m.List(ctx, limit, offset)
}

func (m *mockProductRepository) FindByCategory(ctx context.Context, category product.Category, limit, offset int) ([]*product.Product, error) {
	var out []*product.Product
	for _, p := range m.store {
		if p.Category == category {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	var out []*product.Product
	for _, p := range m.store {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (m *mockProductRepository) Update(ctx context.Context, p *product.Product) error {
	if _, ok := m.store[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int, error) {
	return len(m.store), nil
}

func (m *mockProductRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	if err := m.adjustErr[id]; err != nil {
		return err
	}

	p, ok := m.store[id]
	if !ok {
		return repository.ErrInsufficientStock
	}

	// A procedure recusa resultado negativo
	if p.Stock+delta < 0 {
		return repository.ErrInsufficientStock
	}

	p.Stock += delta
	return nil
}

func (m *mockProductRepository) AdjustStockNonAtomic(ctx context.Context, id string, delta int) error {
	if err := m.adjustNonAtomicErr[id]; err != nil {
		return err
	}

	p, ok := m.store[id]
	if !ok {
		return repository.ErrProductNotFound
	}

	newStock := p.Stock + delta
	if newStock < 0 {
		newStock = 0
	}
	p.Stock = newStock
	return nil
}

func (m *mockProductRepository) stockOf(id string) int {
	return m.store[id].Stock
}

type mockCustomerRepository struct {
	store map[string]*customer.Customer

	adjustErr          map[string]error
	adjustNonAtomicErr map[string]error
}

func newMockCustomerRepository() *mockCustomerRepository {
	return &mockCustomerRepository{
		store:              make(map[string]*customer.Customer),
		adjustErr:          make(map[string]error),
		adjustNonAtomicErr: make(map[string]error),
	}
}

func (m *mockCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	clone := *c
	m.store[c.ID] = &clone
	return nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	c, ok := m.store[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (m *mockCustomerRepository) FindByName(ctx context.Context, term string, limit, offset int) ([]*customer.Customer, error) {
	return m.List(ctx, limit, offset)
}

func (m *mockCustomerRepository) List(ctx context.Context, limit, offset int) ([]*customer.Customer, error) {
	var out []*customer.Customer
	for _, c := range m.store {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (m *mockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	if _, ok := m.store[c.ID]; !ok {
		return repository.ErrCustomerNotFound
	}
	clone := *c
	m.store[c.ID] = &clone
	return nil
}

func (m *mockCustomerRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return repository.ErrCustomerNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockCustomerRepository) Count(ctx context.Context) (int, error) {
	return len(m.store), nil
}

func (m *mockCustomerRepository) AdjustCredit(ctx context.Context, id string, delta float64) error {
	if err := m.adjustErr[id]; err != nil {
		return err
	}

	c, ok := m.store[id]
	if !ok {
		return repository.ErrCustomerNotFound
	}

	// Mesmo clamp da procedure: o saldo nunca fica negativo
	c.CreditBalance += delta
	if c.CreditBalance < 0 {
		c.CreditBalance = 0
	}
	return nil
}

func (m *mockCustomerRepository) AdjustCreditNonAtomic(ctx context.Context, id string, delta float64) error {
	if err := m.adjustNonAtomicErr[id]; err != nil {
		return err
	}

	c, ok := m.store[id]
	if !ok {
		return repository.ErrCustomerNotFound
	}

	c.CreditBalance += delta
	if c.CreditBalance < 0 {
		c.CreditBalance = 0
	}
	return nil
}

func (m *mockCustomerRepository) balanceOf(id string) float64 {
	return m.store[id].CreditBalance
}

type mockSaleRepository struct {
	sales map[string]*sale.Sale
	items map[string][]sale.Item

	createItemsErr error
	deleteItemsErr error
	deleteErr      error
}

func newMockSaleRepository() *mockSaleRepository {
	return &mockSaleRepository{
		sales: make(map[string]*sale.Sale),
		items: make(map[string][]sale.Item),
	}
}

func (m *mockSaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	if s.TransactionID != "" {
		for _, existing := range m.sales {
			if existing.TransactionID == s.TransactionID {
				return repository.ErrSaleDuplicateTransaction
			}
		}
	}

	clone := *s
	clone.Items = nil
	m.sales[s.ID] = &clone
	return nil
}

func (m *mockSaleRepository) CreateItems(ctx context.Context, items []sale.Item) error {
	if m.createItemsErr != nil {
		return m.createItemsErr
	}
	for _, item := range items {
		m.items[item.SaleID] = append(m.items[item.SaleID], item)
	}
	return nil
}

func (m *mockSaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	s, ok := m.sales[id]
	if !ok {
		return nil, repository.ErrSaleNotFound
	}
	clone := *s
	return &clone, nil
}

func (m *mockSaleRepository) FindByIDWithItems(ctx context.Context, id string) (*sale.Sale, error) {
	s, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Items = append([]sale.Item(nil), m.items[id]...)
	return s, nil
}

func (m *mockSaleRepository) FindByTransactionID(ctx context.Context, transactionID string) (*sale.Sale, error) {
	for _, s := range m.sales {
		if s.TransactionID == transactionID {
			clone := *s
			return &clone, nil
		}
	}
	return nil, repository.ErrSaleNotFound
}

func (m *mockSaleRepository) FindByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*sale.Sale, error) {
	var out []*sale.Sale
	for _, s := range m.sales {
		if s.CustomerID == customerID {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockSaleRepository) FindByPeriod(ctx context.Context, from, to time.Time, limit, offset int) ([]*sale.Sale, error) {
	var out []*sale.Sale
	for _, s := range m.sales {
		if !s.TransactionDate.Before(from) && !s.TransactionDate.After(to) {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockSaleRepository) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	var out []*sale.Sale
	for _, s := range m.sales {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (m *mockSaleRepository) ListWithItems(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	var out []*sale.Sale
	for id, s := range m.sales {
		clone := *s
		clone.Items = append([]sale.Item(nil), m.items[id]...)
		out = append(out, &clone)
	}
	return out, nil
}

func (m *mockSaleRepository) DeleteItems(ctx context.Context, saleID string) error {
	if m.deleteItemsErr != nil {
		return m.deleteItemsErr
	}
	delete(m.items, saleID)
	return nil
}

func (m *mockSaleRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.sales[id]; !ok {
		return repository.ErrSaleNotFound
	}
	delete(m.sales, id)
	return nil
}

func (m *mockSaleRepository) Count(ctx context.Context) (int, error) {
	return len(m.sales), nil
}

type mockPaymentRepository struct {
	store map[string]*payment.DebtPayment

	createErr error
}

func newMockPaymentRepository() *mockPaymentRepository {
	return &mockPaymentRepository{store: make(map[string]*payment.DebtPayment)}
}

func (m *mockPaymentRepository) Create(ctx context.Context, p *payment.DebtPayment) error {
	if m.createErr != nil {
		return m.createErr
	}
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id string) (*payment.DebtPayment, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, repository.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockPaymentRepository) FindByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*payment.DebtPayment, error) {
	var out []*payment.DebtPayment
	for _, p := range m.store {
		if p.CustomerID == customerID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockPaymentRepository) FindByPeriod(ctx context.Context, from, to time.Time, limit, offset int) ([]*payment.DebtPayment, error) {
	var out []*payment.DebtPayment
	for _, p := range m.store {
		if !p.PaymentDate.Before(from) && !p.PaymentDate.After(to) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockPaymentRepository) List(ctx context.Context, limit, offset int) ([]*payment.DebtPayment, error) {
	var out []*payment.DebtPayment
	for _, p := range m.store {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (m *mockPaymentRepository) Count(ctx context.Context) (int, error) {
	return len(m.store), nil
}
