package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-bebidas/internal/domain/payment"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrPaymentNotFound      = errors.New("pagamento não encontrado")
	ErrPaymentDatabaseError = errors.New("erro de banco de dados")
)

// DebtPaymentRepository implementa a interface payment.Repository
type DebtPaymentRepository struct {
	db *pgxpool.Pool
}

// NewDebtPaymentRepository cria uma nova instância de DebtPaymentRepository
func NewDebtPaymentRepository(db *pgxpool.Pool) payment.Repository {
	return &DebtPaymentRepository{
		db: db,
	}
}

// Create implementa payment.Repository.Create
func (r *DebtPaymentRepository) Create(ctx context.Context, p *payment.DebtPayment) error {
	// sale_id vazio vira NULL (pagamento sem venda associada)
	var saleID sql.NullString
	if p.SaleID != "" {
		saleID = sql.NullString{String: p.SaleID, Valid: true}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO debt_payments (
			id, customer_id, sale_id, amount, payment_method, notes,
			payment_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.CustomerID, saleID, p.Amount, p.PaymentMethod, p.Notes,
		p.PaymentDate, p.CreatedAt)

	if err != nil {
		return fmt.Errorf("erro ao registrar pagamento: %w", err)
	}

	return nil
}

// FindByID implementa payment.Repository.FindByID
func (r *DebtPaymentRepository) FindByID(ctx context.Context, id string) (*payment.DebtPayment, error) {
	var p payment.DebtPayment
	var saleID sql.NullString

	err := r.db.QueryRow(ctx,
		`SELECT id, customer_id, sale_id, amount, payment_method, notes,
			payment_date, created_at
		FROM debt_payments WHERE id = $1`,
		id).Scan(&p.ID, &p.CustomerID, &saleID, &p.Amount, &p.PaymentMethod,
		&p.Notes, &p.PaymentDate, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pagamento: %w", err)
	}

	p.SaleID = saleID.String
	return &p, nil
}

// FindByCustomer implementa payment.Repository.FindByCustomer
func (r *DebtPaymentRepository) FindByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*payment.DebtPayment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, customer_id, sale_id, amount, payment_method, notes,
			payment_date, created_at
		FROM debt_payments
		WHERE customer_id = $1
		ORDER BY payment_date DESC
		LIMIT $2 OFFSET $3`,
		customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pagamentos: %w", err)
	}
	defer rows.Close()

	return r.scanPaymentRows(rows)
}

// FindByPeriod implementa payment.Repository.FindByPeriod
func (r *DebtPaymentRepository) FindByPeriod(ctx context.Context, from, to time.Time, limit, offset int) ([]*payment.DebtPayment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, customer_id, sale_id, amount, payment_method, notes,
			payment_date, created_at
		FROM debt_payments
		WHERE payment_date >= $1 AND payment_date <= $2
		ORDER BY payment_date DESC
		LIMIT $3 OFFSET $4`,
		from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pagamentos: %w", err)
	}
	defer rows.Close()

	return r.scanPaymentRows(rows)
}

// List implementa payment.Repository.List
func (r *DebtPaymentRepository) List(ctx context.Context, limit, offset int) ([]*payment.DebtPayment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, customer_id, sale_id, amount, payment_method, notes,
			payment_date, created_at
		FROM debt_payments
		ORDER BY payment_date DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pagamentos: %w", err)
	}
	defer rows.Close()

	return r.scanPaymentRows(rows)
}

// Count implementa payment.Repository.Count
func (r *DebtPaymentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM debt_payments").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar pagamentos: %w", err)
	}
	return count, nil
}

// scanPaymentRows converte as linhas do resultado em pagamentos
func (r *DebtPaymentRepository) scanPaymentRows(rows pgx.Rows) ([]*payment.DebtPayment, error) {
	var payments []*payment.DebtPayment

	for rows.Next() {
		var p payment.DebtPayment
		var saleID sql.NullString

		if err := rows.Scan(&p.ID, &p.CustomerID, &saleID, &p.Amount, &p.PaymentMethod,
			&p.Notes, &p.PaymentDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler pagamento: %w", err)
		}

		p.SaleID = saleID.String
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer pagamentos: %w", err)
	}

	return payments, nil
}
