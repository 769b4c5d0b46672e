package service

import (
	"context"

	"github.com/hugohenrick/pdv-bebidas/internal/domain/customer"
	"github.com/hugohenrick/pdv-bebidas/internal/domain/payment"
	"github.com/hugohenrick/pdv-bebidas/pkg/logger"
)

// PaymentService registra pagamentos de dívida e abate o saldo devedor do
// cliente. Dois passos independentes: inserir o pagamento e abater o saldo
// pela procedure atômica.
type PaymentService struct {
	paymentRepo  payment.Repository
	customerRepo customer.Repository
	logger       logger.Logger
}

// NewPaymentService cria uma nova instância de PaymentService
func NewPaymentService(
	paymentRepo payment.Repository,
	customerRepo customer.Repository,
	logger logger.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// RecordPayment insere o pagamento e abate o valor do saldo do cliente.
// A validação de que o valor é positivo e cabe no saldo é de quem chama,
// antes de qualquer acesso ao banco. Se a inserção falhar, nada muda. Se o
// abatimento falhar depois da inserção, o erro é reportado e o pagamento
// permanece gravado sem o saldo atualizado (inconsistência conhecida, não
// corrigida automaticamente).
func (s *PaymentService) RecordPayment(ctx context.Context, p *payment.DebtPayment) (*payment.DebtPayment, error) {
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	if err := s.customerRepo.AdjustCredit(ctx, p.CustomerID, -p.Amount); err != nil {
		s.logger.Error("pagamento gravado mas saldo não abatido, reconciliação manual necessária",
			"payment_id", p.ID, "customer_id", p.CustomerID, "amount", p.Amount, "error", err)
		return nil, err
	}

	return p, nil
}
