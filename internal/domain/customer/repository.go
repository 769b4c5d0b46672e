package customer

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Customer) error

	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, id string) (*Customer, error)

	// FindByName busca clientes pelo nome ou telefone (busca parcial, sem
	// diferenciar maiúsculas de minúsculas)
	FindByName(ctx context.Context, term string, limit, offset int) ([]*Customer, error)

	// List lista os clientes com paginação
	List(ctx context.Context, limit, offset int) ([]*Customer, error)

	// Update atualiza os dados cadastrais de um cliente (não altera o saldo)
	Update(ctx context.Context, c *Customer) error

	// Delete remove um cliente
	Delete(ctx context.Context, id string) error

	// Count conta quantos clientes existem
	Count(ctx context.Context) (int, error)

	// AdjustCredit soma delta ao saldo devedor do cliente de forma atômica,
	// via procedure do banco. Delta negativo abate o saldo; o resultado é
	// travado em zero (nunca fica negativo).
	AdjustCredit(ctx context.Context, id string, delta float64) error

	// AdjustCreditNonAtomic soma delta ao saldo via leitura seguida de
	// escrita, com o mesmo travamento em zero. Caminho de contingência
	// quando a procedure falha; está sujeito a lost update sob concorrência.
	AdjustCreditNonAtomic(ctx context.Context, id string, delta float64) error
}
