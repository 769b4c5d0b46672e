package sale

import (
	"context"
	"time"
)

// Repository define a interface para operações de repositório de vendas.
// A criação da venda e dos itens são operações separadas de propósito: o
// fluxo de venda executa cada passo como uma chamada independente ao banco
// e reporta o que conseguiu concluir (ver internal/service).
type Repository interface {
	// Create insere apenas o registro da venda (sem os itens). Identificador
	// de transação duplicado retorna ErrSaleDuplicateTransaction do adapter.
	Create(ctx context.Context, s *Sale) error

	// CreateItems insere os itens de uma venda já criada
	CreateItems(ctx context.Context, items []Item) error

	// FindByID busca uma venda pelo ID, sem os itens
	FindByID(ctx context.Context, id string) (*Sale, error)

	// FindByIDWithItems busca uma venda pelo ID com os itens carregados
	FindByIDWithItems(ctx context.Context, id string) (*Sale, error)

	// FindByTransactionID busca uma venda pelo identificador de transação
	FindByTransactionID(ctx context.Context, transactionID string) (*Sale, error)

	// FindByCustomer lista as vendas de um cliente
	FindByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*Sale, error)

	// FindByPeriod lista as vendas dentro de um intervalo de datas
	FindByPeriod(ctx context.Context, from, to time.Time, limit, offset int) ([]*Sale, error)

	// List lista as vendas, mais recentes primeiro
	List(ctx context.Context, limit, offset int) ([]*Sale, error)

	// ListWithItems lista as vendas com os itens carregados (relatórios)
	ListWithItems(ctx context.Context, limit, offset int) ([]*Sale, error)

	// DeleteItems remove todos os itens de uma venda
	DeleteItems(ctx context.Context, saleID string) error

	// Delete remove o registro da venda
	Delete(ctx context.Context, id string) error

	// Count conta quantas vendas existem
	Count(ctx context.Context) (int, error)
}
