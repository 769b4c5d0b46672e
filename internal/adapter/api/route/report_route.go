package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-bebidas/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-bebidas/pkg/middleware"
)

// RegisterReportRoutes registra as rotas de painel e relatórios
func RegisterReportRoutes(r *gin.RouterGroup, reportController *controller.ReportController) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/dashboard", reportController.Dashboard)
		reports.GET("/sales", reportController.Sales)
		reports.GET("/inventory", reportController.Inventory)
		reports.GET("/debtors", reportController.Debtors)
	}
}
