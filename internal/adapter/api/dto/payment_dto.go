package dto

import (
	"time"

	"github.com/hugohenrick/pdv-bebidas/internal/domain/payment"
)

// DebtPaymentRequest representa a requisição de pagamento de dívida
type DebtPaymentRequest struct {
	CustomerID    string         `json:"customer_id" binding:"required"`
	SaleID        string         `json:"sale_id"`
	Amount        float64        `json:"amount" binding:"required,gt=0"`
	PaymentMethod payment.Method `json:"payment_method" binding:"required"`
	Notes         string         `json:"notes"`
	PaymentDate   *time.Time     `json:"payment_date"`
}

// DebtPaymentResponse representa a resposta de pagamento de dívida
type DebtPaymentResponse struct {
	ID            string         `json:"id"`
	CustomerID    string         `json:"customer_id"`
	SaleID        string         `json:"sale_id,omitempty"`
	Amount        float64        `json:"amount"`
	PaymentMethod payment.Method `json:"payment_method"`
	Notes         string         `json:"notes,omitempty"`
	PaymentDate   time.Time      `json:"payment_date"`
	CreatedAt     time.Time      `json:"created_at"`
}

// DebtPaymentListResponse representa a resposta de lista de pagamentos
type DebtPaymentListResponse struct {
	Items      []DebtPaymentResponse `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	Size       int                   `json:"size"`
	TotalPages int                   `json:"total_pages"`
}

// ToDebtPaymentResponse converte um pagamento em resposta
func ToDebtPaymentResponse(p *payment.DebtPayment) DebtPaymentResponse {
	return DebtPaymentResponse{
		ID:            p.ID,
		CustomerID:    p.CustomerID,
		SaleID:        p.SaleID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		PaymentDate:   p.PaymentDate,
		CreatedAt:     p.CreatedAt,
	}
}

// ToDebtPaymentListResponse converte uma lista de pagamentos em resposta paginada
func ToDebtPaymentListResponse(payments []*payment.DebtPayment, total, page, size int) DebtPaymentListResponse {
	items := make([]DebtPaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, ToDebtPaymentResponse(p))
	}

	return DebtPaymentListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: calculateTotalPages(total, size),
	}
}
