package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-bebidas/internal/domain/customer"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrCustomerNotFound      = errors.New("cliente não encontrado")
	ErrCustomerDatabaseError = errors.New("erro de banco de dados")
)

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db *pgxpool.Pool
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db *pgxpool.Pool) customer.Repository {
	return &CustomerRepository{
		db: db,
	}
}

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO customers (
			id, name, phone, address, credit_balance, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Phone, c.Address, c.CreditBalance, c.CreatedAt, c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}

	return nil
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	var c customer.Customer

	err := r.db.QueryRow(ctx,
		`SELECT id, name, phone, address, credit_balance, created_at, updated_at
		FROM customers WHERE id = $1`,
		id).Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreditBalance, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	return &c, nil
}

// FindByName implementa customer.Repository.FindByName. O termo é comparado
// com nome e telefone, sem diferenciar maiúsculas de minúsculas.
func (r *CustomerRepository) FindByName(ctx context.Context, term string, limit, offset int) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, phone, address, credit_balance, created_at, updated_at
		FROM customers
		WHERE name ILIKE $1 OR phone ILIKE $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		"%"+term+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar clientes: %w", err)
	}
	defer rows.Close()

	return r.scanCustomerRows(rows)
}

// List implementa customer.Repository.List
func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, phone, address, credit_balance, created_at, updated_at
		FROM customers
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	return r.scanCustomerRows(rows)
}

// Update implementa customer.Repository.Update. O saldo devedor não é
// alterado aqui: mutações de saldo passam apenas por AdjustCredit.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	result, err := r.db.Exec(ctx,
		`UPDATE customers SET
			name = $2, phone = $3, address = $4, updated_at = $5
		WHERE id = $1`,
		c.ID, c.Name, c.Phone, c.Address, time.Now())

	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// Delete implementa customer.Repository.Delete
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao remover cliente: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// Count implementa customer.Repository.Count
func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}
	return count, nil
}

// AdjustCredit implementa customer.Repository.AdjustCredit chamando a
// procedure adjust_customer_credit, que soma delta ao saldo em uma única
// instrução e trava o resultado em zero.
func (r *CustomerRepository) AdjustCredit(ctx context.Context, id string, delta float64) error {
	var newBalance float64
	err := r.db.QueryRow(ctx,
		"SELECT adjust_customer_credit($1, $2)", id, delta).Scan(&newBalance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCustomerNotFound
		}
		if isRaisedException(err) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("erro ao ajustar saldo: %w", err)
	}

	return nil
}

// AdjustCreditNonAtomic implementa customer.Repository.AdjustCreditNonAtomic.
// Leitura seguida de escrita, sem lock, com travamento em zero feito aqui.
// Sujeito a lost update sob concorrência; usado apenas como contingência
// quando a procedure atômica falha.
func (r *CustomerRepository) AdjustCreditNonAtomic(ctx context.Context, id string, delta float64) error {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	newBalance := c.CreditBalance + delta
	if newBalance < 0 {
		newBalance = 0
	}

	result, err := r.db.Exec(ctx,
		"UPDATE customers SET credit_balance = $2, updated_at = $3 WHERE id = $1",
		id, newBalance, time.Now())
	if err != nil {
		return fmt.Errorf("erro ao gravar saldo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// scanCustomerRows converte as linhas do resultado em clientes
func (r *CustomerRepository) scanCustomerRows(rows pgx.Rows) ([]*customer.Customer, error) {
	var customers []*customer.Customer

	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreditBalance, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer clientes: %w", err)
	}

	return customers, nil
}
