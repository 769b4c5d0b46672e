package dto

import (
	"time"

	"github.com/hugohenrick/pdv-bebidas/internal/domain/product"
)

// ProductRequest representa a requisição de produto
type ProductRequest struct {
	Name     string           `json:"name" binding:"required"`
	Category product.Category `json:"category" binding:"required"`
	Stock    int              `json:"stock" binding:"gte=0"`
}

// ProductStockRequest representa a requisição de ajuste de estoque.
// O ajuste é sempre um delta (incremento ou decremento), nunca uma
// sobrescrita direta do valor.
type ProductStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductResponse representa a resposta de produto
type ProductResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Category    product.Category    `json:"category"`
	Stock       int                 `json:"stock"`
	StockStatus product.StockStatus `json:"stock_status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ProductStockStatusResponse representa a resposta de situação de estoque
type ProductStockStatusResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Stock       int                 `json:"stock"`
	StockStatus product.StockStatus `json:"stock_status"`
}

// ProductListResponse representa a resposta de lista de produtos
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalPages int               `json:"total_pages"`
}

// ToProductResponse converte um produto em resposta
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Stock:       p.Stock,
		StockStatus: p.StockStatus(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductListResponse converte uma lista de produtos em resposta paginada
func ToProductListResponse(products []*product.Product, total, page, size int) ProductListResponse {
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, ToProductResponse(p))
	}

	return ProductListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: calculateTotalPages(total, size),
	}
}
