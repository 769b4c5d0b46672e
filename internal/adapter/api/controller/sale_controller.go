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
	productdomain "github.com/hugohenrick/pdv-bebidas/internal/domain/product"
	saledomain "github.com/hugohenrick/pdv-bebidas/internal/domain/sale"
	"github.com/hugohenrick/pdv-bebidas/internal/service"
	"github.com/hugohenrick/pdv-bebidas/pkg/logger"
)

// SaleController gerencia as requisições relacionadas a vendas
type SaleController struct {
	saleService  *service.SaleService
	saleRepo     saledomain.Repository
	productRepo  productdomain.Repository
	customerRepo customerdomain.Repository
	logger       logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(
	saleService *service.SaleService,
	saleRepo saledomain.Repository,
	productRepo productdomain.Repository,
	customerRepo customerdomain.Repository,
	logger logger.Logger,
) *SaleController {
	return &SaleController{
		saleService:  saleService,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create registra uma nova venda
// @Summary Criar venda
// @Description Registra uma venda com seus itens, baixa o estoque e, quando fiado, lança o valor no saldo do cliente
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param sale body dto.SaleRequest true "Dados da venda"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	// Carrinho vazio é barrado aqui, antes do fluxo rodar
	if len(req.Items) == 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "venda precisa de ao menos um item", ""))
		return
	}

	// Buscar o cliente para congelar o nome na venda
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

	// Montar os itens congelando o nome de cada produto e validando o
	// estoque disponível antes de qualquer gravação
	items := make([]saledomain.Item, 0, len(req.Items))
	for _, reqItem := range req.Items {
		product, err := c.productRepo.FindByID(ctx, reqItem.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", reqItem.ProductID))
				return
			}
			c.logger.Error("erro ao buscar produto", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar produto", err.Error()))
			return
		}

		if !product.HasStock(reqItem.Quantity) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity,
				"estoque insuficiente",
				fmt.Sprintf("produto %s tem %d em estoque, pedido %d", product.Name, product.Stock, reqItem.Quantity)))
			return
		}

		item, err := saledomain.NewItem(product.ID, product.Name, reqItem.Quantity, reqItem.UnitPrice, reqItem.TotalPrice)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "item inválido", err.Error()))
			return
		}
		items = append(items, *item)
	}

	var transactionDate time.Time
	if req.TransactionDate != nil {
		transactionDate = *req.TransactionDate
	}

	sl, err := saledomain.NewSale(
		req.TransactionID,
		customer.ID,
		customer.Name,
		req.TotalAmount,
		req.PaymentType,
		transactionDate,
		items,
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao montar venda", err.Error()))
		return
	}

	created, record, err := c.saleService.CreateSale(ctx, sl)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateTransaction) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict,
				"identificador de transação já utilizado", req.TransactionID))
			return
		}
		c.logger.Error("erro ao registrar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponseWithRecord(created, record))
}

// Get retorna uma venda pelo ID, com os itens
// @Summary Buscar venda
// @Description Retorna os dados de uma venda pelo ID, com os itens
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id não informado", ""))
		return
	}

	sl, err := c.saleRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(sl))
}

// GetByTransaction retorna uma venda pelo identificador de transação
// @Summary Buscar venda por identificador de transação
// @Description Retorna os dados de uma venda pelo identificador de transação
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param transaction_id path string true "Identificador de transação"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/transaction/{transaction_id} [get]
func (c *SaleController) GetByTransaction(ctx *gin.Context) {
	transactionID := ctx.Param("transaction_id")
	if transactionID == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "identificador não informado", ""))
		return
	}

	sl, err := c.saleRepo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(sl))
}

// List retorna a lista de vendas
// @Summary Listar vendas
// @Description Retorna a lista de vendas paginada, mais recentes primeiro; filtros opcionais de cliente e período
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param customer_id query string false "ID do cliente"
// @Param from query string false "Início do período (RFC 3339)"
// @Param to query string false "Fim do período (RFC 3339)"
// @Success 200 {object} dto.SaleListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	var (
		sales []*saledomain.Sale
		err   error
	)

	switch {
	case ctx.Query("customer_id") != "":
		sales, err = c.saleRepo.FindByCustomer(ctx, ctx.Query("customer_id"), pagination.PageSize, pagination.Offset())
	case ctx.Query("from") != "" || ctx.Query("to") != "":
		from, to, parseErr := parsePeriod(ctx.Query("from"), ctx.Query("to"))
		if parseErr != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "período inválido", parseErr.Error()))
			return
		}
		sales, err = c.saleRepo.FindByPeriod(ctx, from, to, pagination.PageSize, pagination.Offset())
	default:
		sales, err = c.saleRepo.List(ctx, pagination.PageSize, pagination.Offset())
	}

	if err != nil {
		c.logger.Error("erro ao listar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar vendas", err.Error()))
		return
	}

	total, err := c.saleRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar vendas", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(sales, total, pagination.Page, pagination.PageSize))
}

// Delete remove uma venda estornando estoque e fiado
// @Summary Remover venda
// @Description Remove uma venda devolvendo as quantidades ao estoque e, quando fiado, abatendo o valor do saldo do cliente
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [delete]
func (c *SaleController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id não informado", ""))
		return
	}

	snapshot, record, err := c.saleService.DeleteSale(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao remover venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponseWithRecord(snapshot, record))
}

// parsePeriod interpreta os limites do período; limites ausentes viram o
// intervalo aberto correspondente
func parsePeriod(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Now()

	if fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return from, to, fmt.Errorf("data inicial inválida: %w", err)
		}
		from = parsed
	}

	if toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return from, to, fmt.Errorf("data final inválida: %w", err)
		}
		to = parsed
	}

	return from, to, nil
}
