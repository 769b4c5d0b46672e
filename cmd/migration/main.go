package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hugohenrick/pdv-bebidas/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	// Criar conexão com o banco
	db, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Erro ao conectar com o banco de dados: %v", err)
	}

	// Executar as migrações
	if err := runMigrations(db); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}

func runMigrations(db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	conn, err := db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("erro ao obter conexão: %w", err)
	}
	defer conn.Release()

	// Verificar se a tabela de migrações existe
	if err := createMigrationsTable(ctx, conn); err != nil {
		return fmt.Errorf("erro ao criar tabela de migrações: %w", err)
	}

	// Verificar última migração executada
	lastMigration, err := getLastMigration(ctx, conn)
	if err != nil {
		return fmt.Errorf("erro ao verificar última migração: %w", err)
	}

	log.Printf("Última migração executada: %s", lastMigration)

	// Lista de migrações
	migrations := []migration{
		{
			version: "001_init_schema",
			up: `
				-- Tabela de produtos
				CREATE TABLE IF NOT EXISTS products (
					id UUID PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					category VARCHAR(20) NOT NULL,
					stock INTEGER NOT NULL DEFAULT 0,
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL
				);

				-- Tabela de clientes
				CREATE TABLE IF NOT EXISTS customers (
					id UUID PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					phone VARCHAR(20),
					address VARCHAR(255),
					credit_balance NUMERIC(12,2) NOT NULL DEFAULT 0,
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL
				);

				-- Tabela de vendas (guarda cópia do nome do cliente no momento da venda)
				CREATE TABLE IF NOT EXISTS sales (
					id UUID PRIMARY KEY,
					transaction_id VARCHAR(100) UNIQUE,
					customer_id UUID NOT NULL REFERENCES customers(id),
					customer_name VARCHAR(255) NOT NULL,
					total_amount NUMERIC(12,2) NOT NULL,
					payment_type VARCHAR(20) NOT NULL,
					transaction_date TIMESTAMP NOT NULL,
					created_at TIMESTAMP NOT NULL
				);

				-- Itens da venda (nome e preço copiados do produto no momento da venda)
				CREATE TABLE IF NOT EXISTS sale_items (
					id UUID PRIMARY KEY,
					sale_id UUID NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
					product_id UUID NOT NULL,
					product_name VARCHAR(255) NOT NULL,
					quantity INTEGER NOT NULL,
					unit_price NUMERIC(12,2) NOT NULL,
					total_price NUMERIC(12,2) NOT NULL
				);

				-- Pagamentos de dívida (somente inserção, sem update/delete)
				CREATE TABLE IF NOT EXISTS debt_payments (
					id UUID PRIMARY KEY,
					customer_id UUID NOT NULL REFERENCES customers(id),
					sale_id UUID,
					amount NUMERIC(12,2) NOT NULL,
					payment_method VARCHAR(20) NOT NULL,
					notes VARCHAR(255),
					payment_date TIMESTAMP NOT NULL,
					created_at TIMESTAMP NOT NULL
				);
			`,
		},
		{
			version: "002_create_procedures",
			up: `
				-- Ajuste atômico de estoque: retorna o estoque resultante.
				-- Falha quando o produto não existe ou quando o ajuste
				-- deixaria o estoque negativo.
				CREATE OR REPLACE FUNCTION adjust_product_stock(p_id UUID, p_delta INTEGER)
				RETURNS INTEGER AS $$
				DECLARE
					new_stock INTEGER;
				BEGIN
					UPDATE products
					SET stock = stock + p_delta,
						updated_at = NOW()
					WHERE id = p_id
					  AND stock + p_delta >= 0
					RETURNING stock INTO new_stock;

					IF new_stock IS NULL THEN
						RAISE EXCEPTION 'adjust_product_stock: produto % inexistente ou estoque insuficiente', p_id;
					END IF;

					RETURN new_stock;
				END;
				$$ LANGUAGE plpgsql;

				-- Ajuste atômico de saldo devedor: retorna o saldo resultante,
				-- que nunca fica negativo
				CREATE OR REPLACE FUNCTION adjust_customer_credit(p_id UUID, p_delta NUMERIC)
				RETURNS NUMERIC AS $$
				DECLARE
					new_balance NUMERIC;
				BEGIN
					UPDATE customers
					SET credit_balance = GREATEST(0, credit_balance + p_delta),
						updated_at = NOW()
					WHERE id = p_id
					RETURNING credit_balance INTO new_balance;

					IF new_balance IS NULL THEN
						RAISE EXCEPTION 'adjust_customer_credit: cliente % inexistente', p_id;
					END IF;

					RETURN new_balance;
				END;
				$$ LANGUAGE plpgsql;
			`,
		},
		{
			version: "003_create_indexes",
			up: `
				-- Índices
				CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
				CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
				CREATE INDEX IF NOT EXISTS idx_products_stock ON products(stock);

				CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(name);
				CREATE INDEX IF NOT EXISTS idx_customers_phone ON customers(phone);
				CREATE INDEX IF NOT EXISTS idx_customers_credit ON customers(credit_balance);

				CREATE INDEX IF NOT EXISTS idx_sales_customer_id ON sales(customer_id);
				CREATE INDEX IF NOT EXISTS idx_sales_transaction_date ON sales(transaction_date);
				CREATE INDEX IF NOT EXISTS idx_sales_payment_type ON sales(payment_type);

				CREATE INDEX IF NOT EXISTS idx_sale_items_sale_id ON sale_items(sale_id);
				CREATE INDEX IF NOT EXISTS idx_sale_items_product_id ON sale_items(product_id);

				CREATE INDEX IF NOT EXISTS idx_debt_payments_customer_id ON debt_payments(customer_id);
				CREATE INDEX IF NOT EXISTS idx_debt_payments_payment_date ON debt_payments(payment_date);
			`,
		},
	}

	// Executar migrações pendentes
	for _, m := range migrations {
		if m.version <= lastMigration {
			log.Printf("Pulando migração já executada: %s", m.version)
			continue
		}

		log.Printf("Executando migração: %s", m.version)

		tx, err := conn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("erro ao iniciar transação para migração %s: %w", m.version, err)
		}

		if _, err := tx.Exec(ctx, m.up); err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Printf("Erro ao fazer rollback da migração %s: %v", m.version, rbErr)
			}
			return fmt.Errorf("erro ao executar migração %s: %w", m.version, err)
		}

		if _, err := tx.Exec(ctx, "INSERT INTO migrations (version, executed_at) VALUES ($1, $2)", m.version, time.Now()); err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Printf("Erro ao fazer rollback da migração %s: %v", m.version, rbErr)
			}
			return fmt.Errorf("erro ao registrar migração %s: %w", m.version, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("erro ao confirmar migração %s: %w", m.version, err)
		}

		log.Printf("Migração %s executada com sucesso", m.version)
	}

	return nil
}

type migration struct {
	version string
	up      string
}

func createMigrationsTable(ctx context.Context, conn *pgxpool.Conn) error {
	_, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			version VARCHAR(100) PRIMARY KEY,
			executed_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

func getLastMigration(ctx context.Context, conn *pgxpool.Conn) (string, error) {
	var version string
	err := conn.QueryRow(ctx, "SELECT version FROM migrations ORDER BY executed_at DESC LIMIT 1").Scan(&version)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return version, nil
}
