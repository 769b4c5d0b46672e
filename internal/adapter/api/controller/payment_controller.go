package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-bebidas/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-bebidas/internal/adapter/repository"
	customerdomain "github.com/hugohenrick/pdv-bebidas/internal/domain/customer"
	paymentdomain "github.com/hugohenrick/pdv-bebidas/internal/domain/payment"
	"github.com/hugohenrick/pdv-bebidas/internal/service"
	"github.com/hugohenrick/pdv-bebidas/pkg/logger"
)

// PaymentController gerencia as requisições de pagamentos de dívida
type PaymentController struct {
	paymentService *service.PaymentService
	paymentRepo    paymentdomain.Repository
	customerRepo   customerdomain.Repository
	logger         logger.Logger
}

// NewPaymentController cria uma nova instância de PaymentController
func NewPaymentController(
	paymentService *service.PaymentService,
	paymentRepo paymentdomain.Repository,
	customerRepo customerdomain.Repository,
	logger logger.Logger,
) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		paymentRepo:    paymentRepo,
		customerRepo:   customerRepo,
		logger:         logger,
	}
}

// Create registra um pagamento de dívida
// @Summary Registrar pagamento
// @Description Registra um pagamento de dívida e abate o valor do saldo devedor do cliente
// @Tags payments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payment body dto.DebtPaymentRequest true "Dados do pagamento"
// @Success 201 {object} dto.DebtPaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /payments [post]
func (c *PaymentController) Create(ctx *gin.Context) {
	var req dto.DebtPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	customer, err := c.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	// O valor precisa caber no saldo devedor; a validação acontece aqui,
	// antes de qualquer gravação
	if !customer.CanPay(req.Amount) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity,
			"valor do pagamento maior que o saldo devedor",
			fmt.Sprintf("saldo devedor atual: %.2f", customer.CreditBalance)))
		return
	}

	var paymentDate time.Time
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	p, err := paymentdomain.NewDebtPayment(req.CustomerID, req.SaleID, req.Amount, req.PaymentMethod, req.Notes, paymentDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao montar pagamento", err.Error()))
		return
	}

	recorded, err := c.paymentService.RecordPayment(ctx, p)
	if err != nil {
		c.logger.Error("erro ao registrar pagamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar pagamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToDebtPaymentResponse(recorded))
}

// Get retorna um pagamento pelo ID
// @Summary Buscar pagamento
// @Description Retorna os dados de um pagamento pelo ID
// @Tags payments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pagamento"
// @Success 200 {object} dto.DebtPaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /payments/{id} [get]
func (c *PaymentController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id não informado", ""))
		return
	}

	p, err := c.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "pagamento não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar pagamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar pagamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDebtPaymentResponse(p))
}

// List retorna a lista de pagamentos
// @Summary Listar pagamentos
// @Description Retorna a lista de pagamentos paginada, mais recentes primeiro
// @Tags payments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.DebtPaymentListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /payments [get]
func (c *PaymentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	payments, err := c.paymentRepo.List(ctx, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar pagamentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar pagamentos", err.Error()))
		return
	}

	total, err := c.paymentRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar pagamentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar pagamentos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDebtPaymentListResponse(payments, total, pagination.Page, pagination.PageSize))
}
