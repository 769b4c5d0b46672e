package service

import (
	"context"
	"strings"
	"time"

	"github.com/hugohenrick/pdv-bebidas/internal/domain/customer"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/payment"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/product"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/sale"
)

// fetchAllLimit cobre o volume de dados de uma loja pequena; as agregações
// carregam as coleções inteiras e varrem em memória, sem índice nem
// agregação no banco
const fetchAllLimit = 10000

// DashboardSummary resume os números exibidos no painel principal
type DashboardSummary struct {
	TotalRevenue      float64 `json:"total_revenue"`       // Receita total (todas as vendas)
	SaleCount         int     `json:"sale_count"`          // Quantidade de vendas
	CreditOutstanding float64 `json:"credit_outstanding"`  // Fiado em aberto (soma dos saldos)
	CustomerCount     int     `json:"customer_count"`      // Quantidade de clientes
	ProductCount      int     `json:"product_count"`       // Quantidade de produtos
	OutOfStockCount   int     `json:"out_of_stock_count"`  // Produtos sem estoque
	LowStockCount     int     `json:"low_stock_count"`     // Produtos com estoque baixo
	PaymentsReceived  float64 `json:"payments_received"`   // Total de pagamentos de dívida
}

// CustomerRevenue acumula a receita por cliente
type CustomerRevenue struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	Total        float64 `json:"total"`
	SaleCount    int     `json:"sale_count"`
}

// ProductRevenue acumula a receita por produto
type ProductRevenue struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

// SalesReport é o relatório de vendas de um período
type SalesReport struct {
	From        *time.Time        `json:"from,omitempty"`
	To          *time.Time        `json:"to,omitempty"`
	PaymentType sale.PaymentType  `json:"payment_type,omitempty"`
	Total       float64           `json:"total"`
	CashTotal   float64           `json:"cash_total"`
	CreditTotal float64           `json:"credit_total"`
	SaleCount   int               `json:"sale_count"`
	ByCustomer  []CustomerRevenue `json:"by_customer"`
	ByProduct   []ProductRevenue  `json:"by_product"`
}

// InventoryReport é o relatório de estoque
type InventoryReport struct {
	ProductCount    int                      `json:"product_count"`
	TotalStock      int                      `json:"total_stock"`
	OutOfStockCount int                      `json:"out_of_stock_count"`
	LowStockCount   int                      `json:"low_stock_count"`
	InStockCount    int                      `json:"in_stock_count"`
	ByCategory      map[product.Category]int `json:"by_category"`
	OutOfStock      []*product.Product       `json:"out_of_stock"`
	LowStock        []*product.Product       `json:"low_stock"`
}

// SaleFilter define os filtros locais aplicados sobre a coleção de vendas
type SaleFilter struct {
	Search      string           // termo comparado com nome do cliente e identificador de transação
	PaymentType sale.PaymentType // vazio = todas
	From        *time.Time
	To          *time.Time
}

// ProductFilter define os filtros locais aplicados sobre a coleção de produtos
type ProductFilter struct {
	Search   string           // termo comparado com o nome do produto
	Category product.Category // vazia = todas
	MaxStock int              // menor que zero desliga o filtro
}

// DebtorsReport lista os clientes com fiado em aberto
type DebtorsReport struct {
	CustomerCount    int                  `json:"customer_count"`
	TotalOutstanding float64              `json:"total_outstanding"`
	Customers        []*customer.Customer `json:"customers"`
}

// ReportService deriva os números do painel e dos relatórios. Segue o
// modelo da aplicação: busca as coleções completas e agrega por varredura
// linear em memória.
type ReportService struct {
	saleRepo     sale.Repository
	productRepo  product.Repository
	customerRepo customer.Repository
	paymentRepo  payment.Repository
}

// NewReportService cria uma nova instância de ReportService
func NewReportService(
	saleRepo sale.Repository,
	productRepo product.Repository,
	customerRepo customer.Repository,
	paymentRepo payment.Repository,
) *ReportService {
	return &ReportService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
	}
}

// Dashboard monta o resumo do painel principal
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	sales, err := s.saleRepo.List(ctx, fetchAllLimit, 0)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.List(ctx, fetchAllLimit, 0)
	if err != nil {
		return nil, err
	}

	customers, err := s.customerRepo.List(ctx, fetchAllLimit, 0)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.List(ctx, fetchAllLimit, 0)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		SaleCount:     len(sales),
		CustomerCount: len(customers),
		ProductCount:  len(products),
	}

	for _, sl := range sales {
		summary.TotalRevenue += sl.TotalAmount
	}

	for _, c := range customers {
		summary.CreditOutstanding += c.CreditBalance
	}

	for _, p := range products {
		switch p.StockStatus() {
		case product.StockStatusOut:
			summary.OutOfStockCount++
		case product.StockStatusLow:
			summary.LowStockCount++
		}
	}

	for _, pay := range payments {
		summary.PaymentsReceived += pay.Amount
	}

	return summary, nil
}

// Sales monta o relatório de vendas aplicando os filtros localmente
func (s *ReportService) Sales(ctx context.Context, filter SaleFilter) (*SalesReport, error) {
	sales, err := s.saleRepo.ListWithItems(ctx, fetchAllLimit, 0)
	if err != nil {
		return nil, err
	}

	filtered := FilterSales(sales, filter)

	report := &SalesReport{
		From:        filter.From,
		To:          filter.To,
		PaymentType: filter.PaymentType,
		SaleCount:   len(filtered),
	}

	byCustomer := make(map[string]*CustomerRevenue)
	byProduct := make(map[string]*ProductRevenue)

	for _, sl := range filtered {
		report.Total += sl.TotalAmount
		if sl.IsCredit() {
			report.CreditTotal += sl.TotalAmount
		} else {
			report.CashTotal += sl.TotalAmount
		}

		cr, ok := byCustomer[sl.CustomerID]
		if !ok {
			cr = &CustomerRevenue{CustomerID: sl.CustomerID, CustomerName: sl.CustomerName}
			byCustomer[sl.CustomerID] = cr
		}
		cr.Total += sl.TotalAmount
		cr.SaleCount++

		for _, item := range sl.Items {
			pr, ok := byProduct[item.ProductID]
			if !ok {
				pr = &ProductRevenue{ProductID: item.ProductID, ProductName: item.ProductName}
				byProduct[item.ProductID] = pr
			}
			pr.Quantity += item.Quantity
			pr.Total += item.TotalPrice
		}
	}

	for _, cr := range byCustomer {
		report.ByCustomer = append(report.ByCustomer, *cr)
	}
	for _, pr := range byProduct {
		report.ByProduct = append(report.ByProduct, *pr)
	}

	return report, nil
}

// Inventory monta o relatório de estoque com a classificação fixa
// (0 = sem estoque, 1 a 20 = baixo, acima de 20 = em estoque), após
// aplicar os filtros localmente
func (s *ReportService) Inventory(ctx context.Context, filter ProductFilter) (*InventoryReport, error) {
	products, err := s.productRepo.List(ctx, fetchAllLimit, 0)
	if err != nil {
		return nil, err
	}

	filtered := FilterProducts(products, filter.Search, filter.Category, filter.MaxStock)

	report := &InventoryReport{
		ProductCount: len(filtered),
		ByCategory:   make(map[product.Category]int),
	}

	for _, p := range filtered {
		report.TotalStock += p.Stock
		report.ByCategory[p.Category]++

		switch p.StockStatus() {
		case product.StockStatusOut:
			report.OutOfStockCount++
			report.OutOfStock = append(report.OutOfStock, p)
		case product.StockStatusLow:
			report.LowStockCount++
			report.LowStock = append(report.LowStock, p)
		default:
			report.InStockCount++
		}
	}

	return report, nil
}

// Debtors lista os clientes com saldo de fiado em aberto, com busca
// opcional por nome ou telefone
func (s *ReportService) Debtors(ctx context.Context, search string) (*DebtorsReport, error) {
	customers, err := s.customerRepo.List(ctx, fetchAllLimit, 0)
	if err != nil {
		return nil, err
	}

	report := &DebtorsReport{}
	for _, c := range FilterCustomers(customers, search) {
		if !c.HasDebt() {
			continue
		}
		report.CustomerCount++
		report.TotalOutstanding += c.CreditBalance
		report.Customers = append(report.Customers, c)
	}

	return report, nil
}

// FilterSales aplica os filtros sobre a coleção em memória. A busca textual
// compara substrings sem diferenciar maiúsculas de minúsculas, no nome do
// cliente e no identificador de transação.
func FilterSales(sales []*sale.Sale, filter SaleFilter) []*sale.Sale {
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	var filtered []*sale.Sale
	for _, sl := range sales {
		if term != "" &&
			!strings.Contains(strings.ToLower(sl.CustomerName), term) &&
			!strings.Contains(strings.ToLower(sl.TransactionID), term) {
			continue
		}

		if filter.PaymentType != "" && sl.PaymentType != filter.PaymentType {
			continue
		}

		if filter.From != nil && sl.TransactionDate.Before(*filter.From) {
			continue
		}

		if filter.To != nil && sl.TransactionDate.After(*filter.To) {
			continue
		}

		filtered = append(filtered, sl)
	}

	return filtered
}

// FilterProducts aplica busca textual, categoria e limite de estoque sobre
// a coleção em memória. maxStock menor que zero desliga o filtro de estoque.
func FilterProducts(products []*product.Product, search string, category product.Category, maxStock int) []*product.Product {
	term := strings.ToLower(strings.TrimSpace(search))

	var filtered []*product.Product
	for _, p := range products {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}

		if category != "" && p.Category != category {
			continue
		}

		if maxStock >= 0 && p.Stock > maxStock {
			continue
		}

		filtered = append(filtered, p)
	}

	return filtered
}

// FilterCustomers aplica busca textual sobre nome e telefone
func FilterCustomers(customers []*customer.Customer, search string) []*customer.Customer {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return customers
	}

	var filtered []*customer.Customer
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Phone), term) {
			filtered = append(filtered, c)
		}
	}

	return filtered
}
