package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sritek/scoops-fees/internal/application/service"
	"github.com/sritek/scoops-fees/internal/config"
	"github.com/sritek/scoops-fees/internal/infrastructure/database"
	"github.com/sritek/scoops-fees/internal/infrastructure/repository"
	"github.com/sritek/scoops-fees/internal/presentation/http/handler"
	"github.com/sritek/scoops-fees/internal/presentation/http/routes"
	"github.com/sritek/scoops-fees/pkg/clock"
	"github.com/sritek/scoops-fees/pkg/receipt"
	"github.com/sritek/scoops-fees/pkg/utils"
)

func main() {
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret)
	clk := clock.System()

	// Repositories
	componentRepo := repository.NewComponentRepository(db)
	scholarshipRepo := repository.NewScholarshipRepository(db)
	assignmentRepo := repository.NewStudentScholarshipRepository(db)
	structureRepo := repository.NewFeeStructureRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	installmentRepo := repository.NewInstallmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Services
	componentService := service.NewComponentService(componentRepo)
	scholarshipService := service.NewScholarshipService(scholarshipRepo, assignmentRepo, componentRepo)
	structureService := service.NewStructureService(structureRepo, componentRepo, assignmentRepo, installmentRepo)
	templateService := service.NewTemplateService(templateRepo)
	installmentService := service.NewInstallmentService(installmentRepo, structureRepo, templateRepo, clk)
	paymentService := service.NewPaymentService(paymentRepo, installmentRepo, structureRepo, clk, receipt.Header{
		SchoolName: cfg.Receipt.SchoolName,
		Address:    cfg.Receipt.Address,
		Phone:      cfg.Receipt.Phone,
	})

	// Handlers
	handlers := &routes.Handlers{
		Component:   handler.NewComponentHandler(componentService),
		Scholarship: handler.NewScholarshipHandler(scholarshipService),
		Structure:   handler.NewStructureHandler(structureService),
		Template:    handler.NewTemplateHandler(templateService),
		Installment: handler.NewInstallmentHandler(installmentService),
		Payment:     handler.NewPaymentHandler(paymentService, cfg.Receipt.CharWidth),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
