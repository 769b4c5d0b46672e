package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCustomer  = errors.New("cliente não informado")
	ErrInvalidAmount  = errors.New("valor do pagamento deve ser maior que zero")
	ErrInvalidMethod  = errors.New("forma de pagamento inválida")
	ErrExceedsBalance = errors.New("valor do pagamento maior que o saldo devedor")
)

// Method define a forma do pagamento de dívida
type Method string

const (
	MethodCash         Method = "CASH"          // Dinheiro
	MethodBankTransfer Method = "BANK_TRANSFER" // Transferência bancária
	MethodCard         Method = "CARD"          // Cartão
)

// IsValid verifica se a forma de pagamento é válida
func (m Method) IsValid() bool {
	return m == MethodCash || m == MethodBankTransfer || m == MethodCard
}

// DebtPayment representa um pagamento de dívida (abatimento do fiado).
// Registro somente de inserção: não existe atualização nem exclusão.
type DebtPayment struct {
	ID            string    `json:"id"`                // ID do Pagamento
	CustomerID    string    `json:"customer_id"`       // ID do Cliente
	SaleID        string    `json:"sale_id,omitempty"` // Venda associada (informativo, opcional)
	Amount        float64   `json:"amount"`            // Valor pago
	PaymentMethod Method    `json:"payment_method"`    // Forma de pagamento
	Notes         string    `json:"notes,omitempty"`   // Observações (opcional)
	PaymentDate   time.Time `json:"payment_date"`      // Data do pagamento
	CreatedAt     time.Time `json:"created_at"`        // Data de Criação
}

// NewDebtPayment cria um novo pagamento de dívida. A validação de que o
// valor cabe no saldo devedor do cliente é feita por quem chama, antes de
// qualquer acesso ao banco.
func NewDebtPayment(customerID, saleID string, amount float64, method Method, notes string, paymentDate time.Time) (*DebtPayment, error) {
	if customerID == "" {
		return nil, ErrEmptyCustomer
	}

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}

	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &DebtPayment{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		SaleID:        saleID,
		Amount:        amount,
		PaymentMethod: method,
		Notes:         notes,
		PaymentDate:   paymentDate,
		CreatedAt:     time.Now(),
	}, nil
}
