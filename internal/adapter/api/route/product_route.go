package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-bebidas/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-bebidas/pkg/middleware"
)

// RegisterProductRoutes registra as rotas do módulo de produtos
func RegisterProductRoutes(r *gin.RouterGroup, productController *controller.ProductController) {
	products := r.Group("/products")
	products.Use(middleware.AuthMiddleware())
	{
		products.POST("", productController.Create)
		products.GET("", productController.List)
		products.GET("/search", productController.Search)
		products.GET("/:id", productController.Get)
		products.GET("/:id/stock-status", productController.StockStatus)
		products.PUT("/:id", productController.Update)
		products.PATCH("/:id/stock", productController.AdjustStock)
		products.DELETE("/:id", productController.Delete)
	}
}
