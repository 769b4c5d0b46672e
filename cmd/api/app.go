package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hugohenrick/pdv-bebidas/docs"
	"github.com/hugohenrick/pdv-bebidas/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-bebidas/internal/adapter/api/route"
	"github.com/hugohenrick/pdv-bebidas/internal/adapter/repository"
	"github.com/hugohenrick/pdv-bebidas/internal/infrastructure/database"
	"github.com/hugohenrick/pdv-bebidas/internal/service"
	"github.com/hugohenrick/pdv-bebidas/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	log := logger.NewLogger()

	// Configurar banco de dados
	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	// Aplicar migrações na subida quando habilitado (útil em ambiente de
	// desenvolvimento; em produção o cmd/migration é executado à parte)
	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := database.RunMigrations(); err != nil {
			db.Close()
			return nil, err
		}
	}

	// Criar repositórios
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	paymentRepo := repository.NewDebtPaymentRepository(db)

	// Criar serviços
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo, log)
	paymentService := service.NewPaymentService(paymentRepo, customerRepo, log)
	reportService := service.NewReportService(saleRepo, productRepo, customerRepo, paymentRepo)

	// Criar controllers
	productController := controller.NewProductController(productRepo, log)
	customerController := controller.NewCustomerController(customerRepo, paymentRepo, log)
	saleController := controller.NewSaleController(saleService, saleRepo, productRepo, customerRepo, log)
	paymentController := controller.NewPaymentController(paymentService, paymentRepo, customerRepo, log)
	reportController := controller.NewReportController(reportService, log)

	// Configurar router
	router := gin.Default()
	router.Use(gin.Recovery())

	// Configurar CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Documentação Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Rotas da API
	api := router.Group("/api/v1")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.RegisterProductRoutes(api, productController)
	route.RegisterCustomerRoutes(api, customerController)
	route.RegisterSaleRoutes(api, saleController)
	route.RegisterPaymentRoutes(api, paymentController)
	route.RegisterReportRoutes(api, reportController)

	return &App{
		router: router,
		db:     db,
		logger: log,
	}, nil
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
