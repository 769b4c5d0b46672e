package dto

import (
	"time"

	"github.com/hugohenrick/pdv-bebidas/internal/domain/sale"
	"github.com/hugohenrick/pdv-bebidas/pkg/workflow"
)

// SaleItemRequest representa a requisição de item da venda
type SaleItemRequest struct {
	ProductID  string  `json:"product_id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" binding:"gte=0"`
	TotalPrice float64 `json:"total_price" binding:"gte=0"`
}

// SaleRequest representa a requisição de venda. O carrinho não pode ser
// vazio; a validação acontece aqui, antes do fluxo de criação rodar.
type SaleRequest struct {
	TransactionID   string            `json:"transaction_id"`
	CustomerID      string            `json:"customer_id" binding:"required"`
	TotalAmount     float64           `json:"total_amount" binding:"gte=0"`
	PaymentType     sale.PaymentType  `json:"payment_type" binding:"required"`
	TransactionDate *time.Time        `json:"transaction_date"`
	Items           []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleItemResponse representa a resposta de item da venda
type SaleItemResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// SaleResponse representa a resposta de venda
type SaleResponse struct {
	ID              string             `json:"id"`
	TransactionID   string             `json:"transaction_id,omitempty"`
	CustomerID      string             `json:"customer_id"`
	CustomerName    string             `json:"customer_name"`
	TotalAmount     float64            `json:"total_amount"`
	PaymentType     sale.PaymentType   `json:"payment_type"`
	TransactionDate time.Time          `json:"transaction_date"`
	CreatedAt       time.Time          `json:"created_at"`
	Items           []SaleItemResponse `json:"items,omitempty"`
	PendingSteps    []workflow.Step    `json:"pending_steps,omitempty"` // Passos laterais que falharam
}

// SaleListResponse representa a resposta de lista de vendas
type SaleListResponse struct {
	Items      []SaleResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalPages int            `json:"total_pages"`
}

// ToSaleResponse converte uma venda em resposta
func ToSaleResponse(s *sale.Sale) SaleResponse {
	resp := SaleResponse{
		ID:              s.ID,
		TransactionID:   s.TransactionID,
		CustomerID:      s.CustomerID,
		CustomerName:    s.CustomerName,
		TotalAmount:     s.TotalAmount,
		PaymentType:     s.PaymentType,
		TransactionDate: s.TransactionDate,
		CreatedAt:       s.CreatedAt,
	}

	for _, item := range s.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	return resp
}

// ToSaleResponseWithRecord converte uma venda em resposta anexando os
// passos laterais que falharam, quando houver
func ToSaleResponseWithRecord(s *sale.Sale, record *workflow.Record) SaleResponse {
	resp := ToSaleResponse(s)
	if record != nil {
		resp.PendingSteps = record.Failures()
	}
	return resp
}

// ToSaleListResponse converte uma lista de vendas em resposta paginada
func ToSaleListResponse(sales []*sale.Sale, total, page, size int) SaleListResponse {
	items := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, ToSaleResponse(s))
	}

	return SaleListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: calculateTotalPages(total, size),
	}
}
