package product

import (
	"context"
)

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByName busca produtos pelo nome (busca parcial, sem diferenciar
	// maiúsculas de minúsculas)
	FindByName(ctx context.Context, name string, limit, offset int) ([]*Product, error)

	// FindByCategory lista os produtos de uma categoria
	FindByCategory(ctx context.Context, category Category, limit, offset int) ([]*Product, error)

	// List lista os produtos com paginação
	List(ctx context.Context, limit, offset int) ([]*Product, error)

	// Update atualiza os dados cadastrais de um produto (não altera o estoque)
	Update(ctx context.Context, p *Product) error

	// Delete remove um produto
	Delete(ctx context.Context, id string) error

	// Count conta quantos produtos existem
	Count(ctx context.Context) (int, error)

	// AdjustStock soma delta ao estoque do produto de forma atômica, via
	// procedure do banco. Delta negativo decrementa; a procedure recusa
	// resultado negativo.
	AdjustStock(ctx context.Context, id string, delta int) error

	// AdjustStockNonAtomic soma delta ao estoque via leitura seguida de
	// escrita. Caminho de contingência quando a procedure falha; está
	// sujeito a lost update sob concorrência.
	AdjustStockNonAtomic(ctx context.Context, id string, delta int) error
}
