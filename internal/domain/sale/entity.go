package sale

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCustomer      = errors.New("cliente não informado")
	ErrEmptyItems         = errors.New("venda precisa de ao menos um item")
	ErrInvalidPaymentType = errors.New("forma de pagamento inválida")
	ErrInvalidQuantity    = errors.New("quantidade deve ser maior que zero")
	ErrInvalidUnitPrice   = errors.New("preço unitário não pode ser negativo")
)

// PaymentType define a forma de pagamento da venda
type PaymentType string

const (
	PaymentCash   PaymentType = "CASH"   // À vista
	PaymentCredit PaymentType = "CREDIT" // Fiado (crédito do cliente)
)

// IsValid verifica se a forma de pagamento é válida
func (p PaymentType) IsValid() bool {
	return p == PaymentCash || p == PaymentCredit
}

// Item representa um item (linha) da venda
type Item struct {
	ID          string  `json:"id"`           // ID do Item
	SaleID      string  `json:"sale_id"`      // ID da Venda
	ProductID   string  `json:"product_id"`   // ID do Produto
	ProductName string  `json:"product_name"` // Nome do produto no momento da venda
	Quantity    int     `json:"quantity"`     // Quantidade vendida
	UnitPrice   float64 `json:"unit_price"`   // Preço unitário no momento da venda
	TotalPrice  float64 `json:"total_price"`  // Total da linha (quantidade x preço)
}

// Sale representa uma venda no sistema
type Sale struct {
	ID              string      `json:"id"`                       // ID da Venda
	TransactionID   string      `json:"transaction_id,omitempty"` // Identificador da transação (único, opcional)
	CustomerID      string      `json:"customer_id"`              // ID do Cliente
	CustomerName    string      `json:"customer_name"`            // Nome do cliente no momento da venda
	TotalAmount     float64     `json:"total_amount"`             // Valor total da venda
	PaymentType     PaymentType `json:"payment_type"`             // Forma de pagamento (CASH/CREDIT)
	TransactionDate time.Time   `json:"transaction_date"`         // Data da transação
	CreatedAt       time.Time   `json:"created_at"`               // Data de Criação
	Items           []Item      `json:"items,omitempty"`          // Itens da venda
}

// NewItem cria um novo item de venda. O total da linha é informado pelo
// chamador e persistido como veio, sem reconferência.
func NewItem(productID, productName string, quantity int, unitPrice, totalPrice float64) (*Item, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if unitPrice < 0 {
		return nil, ErrInvalidUnitPrice
	}

	return &Item{
		ID:          uuid.New().String(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  totalPrice,
	}, nil
}

// NewSale cria uma nova venda com seus itens. O nome do cliente é congelado
// no momento da venda (snapshot), assim como o nome de cada produto nos itens.
func NewSale(
	transactionID string,
	customerID string,
	customerName string,
	totalAmount float64,
	paymentType PaymentType,
	transactionDate time.Time,
	items []Item,
) (*Sale, error) {
	if customerID == "" {
		return nil, ErrEmptyCustomer
	}

	if !paymentType.IsValid() {
		return nil, ErrInvalidPaymentType
	}

	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	if transactionDate.IsZero() {
		transactionDate = time.Now()
	}

	s := &Sale{
		ID:              uuid.New().String(),
		TransactionID:   transactionID,
		CustomerID:      customerID,
		CustomerName:    customerName,
		TotalAmount:     totalAmount,
		PaymentType:     paymentType,
		TransactionDate: transactionDate,
		CreatedAt:       time.Now(),
	}

	for _, item := range items {
		item.SaleID = s.ID
		s.Items = append(s.Items, item)
	}

	return s, nil
}

// IsCredit verifica se a venda foi fiado
func (s *Sale) IsCredit() bool {
	return s.PaymentType == PaymentCredit
}

// ItemsTotal soma os totais das linhas (usado apenas para exibição e
// conferência em relatórios; o valor oficial da venda é TotalAmount)
func (s *Sale) ItemsTotal() float64 {
	var total float64
	for _, item := range s.Items {
		total += item.TotalPrice
	}
	return total
}
