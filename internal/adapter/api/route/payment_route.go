package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-bebidas/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-bebidas/pkg/middleware"
)

// RegisterPaymentRoutes registra as rotas do módulo de pagamentos de dívida
func RegisterPaymentRoutes(r *gin.RouterGroup, paymentController *controller.PaymentController) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST("", paymentController.Create)
		payments.GET("", paymentController.List)
		payments.GET("/:id", paymentController.Get)
	}
}
