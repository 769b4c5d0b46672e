package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("nome não pode ser vazio")
	ErrInvalidCategory = errors.New("categoria inválida")
	ErrNegativeStock   = errors.New("estoque não pode ser negativo")
)

// Category define a categoria do produto
type Category string

const (
	CategoryWater  Category = "Water"  // Águas
	CategoryDrinks Category = "Drinks" // Bebidas em geral
)

// IsValid verifica se a categoria é válida
func (c Category) IsValid() bool {
	return c == CategoryWater || c == CategoryDrinks
}

// StockStatus representa a classificação do estoque de um produto
type StockStatus string

const (
	StockStatusOut StockStatus = "out_of_stock" // Sem estoque
	StockStatusLow StockStatus = "low_stock"    // Estoque baixo
	StockStatusIn  StockStatus = "in_stock"     // Em estoque
)

// LowStockThreshold é o limite fixo de estoque baixo usado em todas as
// telas (dashboard, estoque e relatórios)
const LowStockThreshold = 20

// Product representa um produto no sistema
type Product struct {
	ID        string    `json:"id"`         // ID do Produto
	Name      string    `json:"name"`       // Nome do Produto
	Category  Category  `json:"category"`   // Categoria (Water/Drinks)
	Stock     int       `json:"stock"`      // Quantidade em Estoque
	CreatedAt time.Time `json:"created_at"` // Data de Criação
	UpdatedAt time.Time `json:"updated_at"` // Data de Atualização
}

// NewProduct cria um novo produto
func NewProduct(name string, category Category, stock int) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	if stock < 0 {
		return nil, ErrNegativeStock
	}

	now := time.Now()
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update atualiza os dados cadastrais do produto
func (p *Product) Update(name string, category Category) error {
	if name == "" {
		return ErrEmptyName
	}

	if !category.IsValid() {
		return ErrInvalidCategory
	}

	p.Name = name
	p.Category = category
	p.UpdatedAt = time.Now()

	return nil
}

// StockStatus classifica o estoque atual do produto
func (p *Product) StockStatus() StockStatus {
	return ClassifyStock(p.Stock)
}

// ClassifyStock classifica uma quantidade de estoque segundo a política fixa:
// 0 = sem estoque, 1 a 20 = estoque baixo, acima de 20 = em estoque
func ClassifyStock(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StockStatusOut
	case stock <= LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// HasStock verifica se o produto tem estoque suficiente para a quantidade
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}
