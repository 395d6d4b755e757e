package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pacificpay/payroll-backend-go/internal/config"
	appHTTP "github.com/pacificpay/payroll-backend-go/internal/handler/http"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/database"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/email"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/jwt"
	"github.com/pacificpay/payroll-backend-go/internal/repository/postgresql"
	authService "github.com/pacificpay/payroll-backend-go/internal/service/auth"
	batchService "github.com/pacificpay/payroll-backend-go/internal/service/batch"
	employeeService "github.com/pacificpay/payroll-backend-go/internal/service/employee"
	leaveService "github.com/pacificpay/payroll-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:    cfg.Database.MaxConns,
		MinConns:    cfg.Database.MinConns,
		ConnTimeout: cfg.Database.OperationTimeout,
	})
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	batchRepo := postgresql.NewBatchRepository(db)
	carryOverRepo := postgresql.NewCarryOverRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	authSvc := authService.NewAuthService(userRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	batchSvc := batchService.NewBatchService(
		db,
		batchRepo,
		employeeRepo,
		emailService,
		cfg.App.BaseURL,
		cfg.Database.OperationTimeout,
	)
	balanceSvc := leaveService.NewBalanceService(batchRepo, carryOverRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	batchHandler := appHTTP.NewBatchHandler(batchSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc, batchSvc, balanceSvc)

	router := appHTTP.NewRouter(JWTService, authHandler, batchHandler, employeeHandler, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
