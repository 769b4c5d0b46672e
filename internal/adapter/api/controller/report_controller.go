package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-bebidas/internal/adapter/api/dto"
	productdomain "github.com/hugohenrick/pdv-bebidas/internal/domain/product"
	saledomain "github.com/hugohenrick/pdv-bebidas/internal/domain/sale"
	"github.com/hugohenrick/pdv-bebidas/internal/service"
	"github.com/hugohenrick/pdv-bebidas/pkg/logger"
)

// ReportController gerencia as requisições de painel e relatórios
type ReportController struct {
	reportService *service.ReportService
	logger        logger.Logger
}

// NewReportController cria uma nova instância de ReportController
func NewReportController(reportService *service.ReportService, logger logger.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// Dashboard retorna o resumo do painel principal
// @Summary Painel principal
// @Description Retorna receita total, vendas, fiado em aberto e situação do estoque
// @Tags reports
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} service.DashboardSummary
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/dashboard [get]
func (c *ReportController) Dashboard(ctx *gin.Context) {
	summary, err := c.reportService.Dashboard(ctx)
	if err != nil {
		c.logger.Error("erro ao montar painel", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar painel", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// Sales retorna o relatório de vendas
// @Summary Relatório de vendas
// @Description Retorna totais e receita por cliente e por produto, com filtros de busca, forma de pagamento e período
// @Tags reports
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param q query string false "Termo de busca (cliente ou identificador de transação)"
// @Param payment_type query string false "Forma de pagamento (CASH/CREDIT)"
// @Param from query string false "Início do período (RFC 3339)"
// @Param to query string false "Fim do período (RFC 3339)"
// @Success 200 {object} service.SalesReport
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/sales [get]
func (c *ReportController) Sales(ctx *gin.Context) {
	filter := service.SaleFilter{
		Search:      ctx.Query("q"),
		PaymentType: saledomain.PaymentType(ctx.Query("payment_type")),
	}

	if ctx.Query("from") != "" || ctx.Query("to") != "" {
		from, to, err := parsePeriod(ctx.Query("from"), ctx.Query("to"))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "período inválido", err.Error()))
			return
		}
		filter.From = &from
		filter.To = &to
	}

	report, err := c.reportService.Sales(ctx, filter)
	if err != nil {
		c.logger.Error("erro ao montar relatório de vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar relatório", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// Inventory retorna o relatório de estoque
// @Summary Relatório de estoque
// @Description Retorna a situação do estoque por categoria e a classificação de cada produto, com filtros de busca, categoria e teto de estoque
// @Tags reports
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param q query string false "Termo de busca (nome do produto)"
// @Param category query string false "Categoria (Water/Drinks)"
// @Param max_stock query int false "Somente produtos com estoque até este valor"
// @Success 200 {object} service.InventoryReport
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/inventory [get]
func (c *ReportController) Inventory(ctx *gin.Context) {
	filter := service.ProductFilter{
		Search:   ctx.Query("q"),
		Category: productdomain.Category(ctx.Query("category")),
		MaxStock: -1,
	}

	if raw := ctx.Query("max_stock"); raw != "" {
		maxStock, err := strconv.Atoi(raw)
		if err != nil || maxStock < 0 {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "max_stock inválido", "informe um inteiro maior ou igual a zero"))
			return
		}
		filter.MaxStock = maxStock
	}

	report, err := c.reportService.Inventory(ctx, filter)
	if err != nil {
		c.logger.Error("erro ao montar relatório de estoque", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar relatório", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// Debtors retorna o relatório de clientes com fiado em aberto
// @Summary Relatório de devedores
// @Description Retorna os clientes com saldo de fiado em aberto e o total devido
// @Tags reports
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param q query string false "Termo de busca (nome ou telefone do cliente)"
// @Success 200 {object} service.DebtorsReport
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/debtors [get]
func (c *ReportController) Debtors(ctx *gin.Context) {
	report, err := c.reportService.Debtors(ctx, ctx.Query("q"))
	if err != nil {
		c.logger.Error("erro ao montar relatório de devedores", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar relatório", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, report)
}
