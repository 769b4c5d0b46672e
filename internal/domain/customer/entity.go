package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName      = errors.New("nome não pode ser vazio")
	ErrNegativeCredit = errors.New("saldo devedor não pode ser negativo")
)

// Customer representa um cliente no sistema
type Customer struct {
	ID            string    `json:"id"`             // ID do Cliente
	Name          string    `json:"name"`           // Nome do Cliente
	Phone         string    `json:"phone"`          // Telefone (opcional)
	Address       string    `json:"address"`        // Endereço (opcional)
	CreditBalance float64   `json:"credit_balance"` // Saldo devedor (fiado)
	CreatedAt     time.Time `json:"created_at"`     // Data de Criação
	UpdatedAt     time.Time `json:"updated_at"`     // Data de Atualização
}

// NewCustomer cria um novo cliente
func NewCustomer(name, phone, address string) (*Customer, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	return &Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update atualiza os dados cadastrais do cliente
func (c *Customer) Update(name, phone, address string) error {
	if name == "" {
		return ErrEmptyName
	}

	c.Name = name
	c.Phone = phone
	c.Address = address
	c.UpdatedAt = time.Now()

	return nil
}

// HasDebt verifica se o cliente tem saldo devedor em aberto
func (c *Customer) HasDebt() bool {
	return c.CreditBalance > 0
}

// CanPay verifica se um pagamento de valor amount cabe no saldo devedor
func (c *Customer) CanPay(amount float64) bool {
	return amount > 0 && amount <= c.CreditBalance
}
