package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-bebidas/internal/domain/sale"
	"github.com/hugohenrick/pdv-bebidas/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrSaleNotFound             = errors.New("venda não encontrada")
	ErrSaleDuplicateTransaction = errors.New("já existe uma venda com este identificador de transação")
	ErrSaleDatabaseError        = errors.New("erro de banco de dados")
)

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db *pgxpool.Pool
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db *pgxpool.Pool) sale.Repository {
	return &SaleRepository{
		db: db,
	}
}

// Create implementa sale.Repository.Create. Insere apenas o registro da
// venda; os itens são inseridos por CreateItems, em chamada separada.
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	// transaction_id vazio vira NULL para não colidir no índice único
	var transactionID sql.NullString
	if s.TransactionID != "" {
		transactionID = sql.NullString{String: s.TransactionID, Valid: true}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO sales (
			id, transaction_id, customer_id, customer_name, total_amount,
			payment_type, transaction_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, transactionID, s.CustomerID, s.CustomerName, s.TotalAmount,
		s.PaymentType, s.TransactionDate, s.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrSaleDuplicateTransaction
		}
		return fmt.Errorf("erro ao criar venda: %w", err)
	}

	return nil
}

// CreateItems implementa sale.Repository.CreateItems. O lote de itens é um
// único passo do fluxo, então as inserções rodam juntas em uma transação:
// ou todos os itens entram, ou nenhum. Isso não estende atomicidade aos
// demais passos do fluxo de venda (o registro da venda já foi gravado em
// chamada anterior).
func (r *SaleRepository) CreateItems(ctx context.Context, items []sale.Item) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		for _, item := range items {
			_, err := tx.Exec(ctx,
				`INSERT INTO sale_items (
					id, sale_id, product_id, product_name, quantity, unit_price, total_price
				) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				item.ID, item.SaleID, item.ProductID, item.ProductName,
				item.Quantity, item.UnitPrice, item.TotalPrice)

			if err != nil {
				return fmt.Errorf("erro ao criar item da venda: %w", err)
			}
		}
		return nil
	})
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	s, err := r.scanSaleRow(r.db.QueryRow(ctx,
		`SELECT id, transaction_id, customer_id, customer_name, total_amount,
			payment_type, transaction_date, created_at
		FROM sales WHERE id = $1`,
		id))
	if err != nil {
		return nil, err
	}

	return s, nil
}

// FindByIDWithItems implementa sale.Repository.FindByIDWithItems
func (r *SaleRepository) FindByIDWithItems(ctx context.Context, id string) (*sale.Sale, error) {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := r.findItems(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items

	return s, nil
}

// FindByTransactionID implementa sale.Repository.FindByTransactionID
func (r *SaleRepository) FindByTransactionID(ctx context.Context, transactionID string) (*sale.Sale, error) {
	s, err := r.scanSaleRow(r.db.QueryRow(ctx,
		`SELECT id, transaction_id, customer_id, customer_name, total_amount,
			payment_type, transaction_date, created_at
		FROM sales WHERE transaction_id = $1`,
		transactionID))
	if err != nil {
		return nil, err
	}

	items, err := r.findItems(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items

	return s, nil
}

// FindByCustomer implementa sale.Repository.FindByCustomer
func (r *SaleRepository) FindByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, transaction_id, customer_id, customer_name, total_amount,
			payment_type, transaction_date, created_at
		FROM sales
		WHERE customer_id = $1
		ORDER BY transaction_date DESC
		LIMIT $2 OFFSET $3`,
		customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	return r.scanSaleRows(rows)
}

// FindByPeriod implementa sale.Repository.FindByPeriod
func (r *SaleRepository) FindByPeriod(ctx context.Context, from, to time.Time, limit, offset int) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, transaction_id, customer_id, customer_name, total_amount,
			payment_type, transaction_date, created_at
		FROM sales
		WHERE transaction_date >= $1 AND transaction_date <= $2
		ORDER BY transaction_date DESC
		LIMIT $3 OFFSET $4`,
		from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	return r.scanSaleRows(rows)
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, transaction_id, customer_id, customer_name, total_amount,
			payment_type, transaction_date, created_at
		FROM sales
		ORDER BY transaction_date DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	return r.scanSaleRows(rows)
}

// ListWithItems implementa sale.Repository.ListWithItems
func (r *SaleRepository) ListWithItems(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	sales, err := r.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, s := range sales {
		items, err := r.findItems(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}

	return sales, nil
}

// DeleteItems implementa sale.Repository.DeleteItems
func (r *SaleRepository) DeleteItems(ctx context.Context, saleID string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM sale_items WHERE sale_id = $1", saleID)
	if err != nil {
		return fmt.Errorf("erro ao remover itens da venda: %w", err)
	}
	return nil
}

// Delete implementa sale.Repository.Delete
func (r *SaleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM sales WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao remover venda: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSaleNotFound
	}

	return nil
}

// Count implementa sale.Repository.Count
func (r *SaleRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM sales").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar vendas: %w", err)
	}
	return count, nil
}

// findItems carrega os itens de uma venda
func (r *SaleRepository) findItems(ctx context.Context, saleID string) ([]sale.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sale_id, product_id, product_name, quantity, unit_price, total_price
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY product_name ASC`,
		saleID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens da venda: %w", err)
	}
	defer rows.Close()

	var items []sale.Item
	for rows.Next() {
		var item sale.Item
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("erro ao ler item da venda: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer itens da venda: %w", err)
	}

	return items, nil
}

// scanSaleRow converte uma linha do resultado em venda
func (r *SaleRepository) scanSaleRow(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	var transactionID sql.NullString

	err := row.Scan(&s.ID, &transactionID, &s.CustomerID, &s.CustomerName,
		&s.TotalAmount, &s.PaymentType, &s.TransactionDate, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}

	s.TransactionID = transactionID.String
	return &s, nil
}

// scanSaleRows converte as linhas do resultado em vendas
func (r *SaleRepository) scanSaleRows(rows pgx.Rows) ([]*sale.Sale, error) {
	var sales []*sale.Sale

	for rows.Next() {
		var s sale.Sale
		var transactionID sql.NullString

		if err := rows.Scan(&s.ID, &transactionID, &s.CustomerID, &s.CustomerName,
			&s.TotalAmount, &s.PaymentType, &s.TransactionDate, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}

		s.TransactionID = transactionID.String
		sales = append(sales, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer vendas: %w", err)
	}

	return sales, nil
}
