package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-bebidas/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-bebidas/pkg/middleware"
)

// RegisterCustomerRoutes registra as rotas do módulo de clientes
func RegisterCustomerRoutes(r *gin.RouterGroup, customerController *controller.CustomerController) {
	customers := r.Group("/customers")
	customers.Use(middleware.AuthMiddleware())
	{
		customers.POST("", customerController.Create)
		customers.GET("", customerController.List)
		customers.GET("/search", customerController.Search)
		customers.GET("/:id", customerController.Get)
		customers.GET("/:id/payments", customerController.Payments)
		customers.PUT("/:id", customerController.Update)
		customers.DELETE("/:id", customerController.Delete)
	}
}
