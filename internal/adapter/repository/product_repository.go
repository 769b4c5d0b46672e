package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-bebidas/internal/domain/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrProductNotFound      = errors.New("produto não encontrado")
	ErrInsufficientStock    = errors.New("estoque insuficiente")
	ErrProductDatabaseError = errors.New("erro de banco de dados")
)

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{
		db: db,
	}
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (
			id, name, category, stock, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Category, p.Stock, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar produto: %w", err)
	}

	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product

	err := r.db.QueryRow(ctx,
		`SELECT id, name, category, stock, created_at, updated_at
		FROM products WHERE id = $1`,
		id).Scan(&p.ID, &p.Name, &p.Category, &p.Stock, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	return &p, nil
}

// FindByName implementa product.Repository.FindByName
func (r *ProductRepository) FindByName(ctx context.Context, name string, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, stock, created_at, updated_at
		FROM products
		WHERE name ILIKE $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		"%"+name+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produtos: %w", err)
	}
	defer rows.Close()

	return r.scanProductRows(rows)
}

// FindByCategory implementa product.Repository.FindByCategory
func (r *ProductRepository) FindByCategory(ctx context.Context, category product.Category, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, stock, created_at, updated_at
		FROM products
		WHERE category = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	return r.scanProductRows(rows)
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, stock, created_at, updated_at
		FROM products
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	return r.scanProductRows(rows)
}

// Update implementa product.Repository.Update. O estoque não é alterado
// aqui: mutações de estoque passam apenas por AdjustStock.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	result, err := r.db.Exec(ctx,
		`UPDATE products SET
			name = $2, category = $3, updated_at = $4
		WHERE id = $1`,
		p.ID, p.Name, p.Category, time.Now())

	if err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete implementa product.Repository.Delete
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao remover produto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Count implementa product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar produtos: %w", err)
	}
	return count, nil
}

// AdjustStock implementa product.Repository.AdjustStock chamando a procedure
// adjust_product_stock, que soma delta ao estoque em uma única instrução.
// A procedure lança exceção quando o produto não existe ou quando o
// resultado ficaria negativo.
func (r *ProductRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	var newStock int
	err := r.db.QueryRow(ctx,
		"SELECT adjust_product_stock($1, $2)", id, delta).Scan(&newStock)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProductNotFound
		}
		if isRaisedException(err) {
			// A procedure lança exceção tanto para produto inexistente
			// quanto para estoque que ficaria negativo
			return ErrInsufficientStock
		}
		return fmt.Errorf("erro ao ajustar estoque: %w", err)
	}

	return nil
}

// AdjustStockNonAtomic implementa product.Repository.AdjustStockNonAtomic.
// Leitura seguida de escrita, sem lock: sujeito a lost update quando duas
// sessões mexem no mesmo produto ao mesmo tempo. Usado apenas como
// contingência quando a procedure atômica falha.
func (r *ProductRepository) AdjustStockNonAtomic(ctx context.Context, id string, delta int) error {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	newStock := p.Stock + delta
	if newStock < 0 {
		newStock = 0
	}

	result, err := r.db.Exec(ctx,
		"UPDATE products SET stock = $2, updated_at = $3 WHERE id = $1",
		id, newStock, time.Now())
	if err != nil {
		return fmt.Errorf("erro ao gravar estoque: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// scanProductRows converte as linhas do resultado em produtos
func (r *ProductRepository) scanProductRows(rows pgx.Rows) ([]*product.Product, error) {
	var products []*product.Product

	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer produtos: %w", err)
	}

	return products, nil
}
