package payment

import (
	"context"
	"time"
)

// Repository define a interface para operações de repositório de pagamentos
// de dívida. Pagamentos são somente de inserção; não há Update nem Delete.
type Repository interface {
	// Create registra um novo pagamento
	Create(ctx context.Context, p *DebtPayment) error

	// FindByID busca um pagamento pelo ID
	FindByID(ctx context.Context, id string) (*DebtPayment, error)

	// FindByCustomer lista os pagamentos de um cliente
	FindByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*DebtPayment, error)

	// FindByPeriod lista os pagamentos dentro de um intervalo de datas
	FindByPeriod(ctx context.Context, from, to time.Time, limit, offset int) ([]*DebtPayment, error)

	// List lista os pagamentos, mais recentes primeiro
	List(ctx context.Context, limit, offset int) ([]*DebtPayment, error)

	// Count conta quantos pagamentos existem
	Count(ctx context.Context) (int, error)
}
