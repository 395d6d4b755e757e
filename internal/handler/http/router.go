package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pacificpay/payroll-backend-go/internal/handler/http/middleware"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	batchHandler BatchHandler,
	employeeHandler EmployeeHandler,
	env string,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", authHandler.Login)

		// The token itself is the capability to view a batch, so the
		// decision page data source is public.
		r.Get("/approvals", batchHandler.GetBatchByToken)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Post("/approvals/decide", batchHandler.Decide)

			r.Route("/batches", func(r chi.Router) {
				r.Post("/", batchHandler.CreateWageBatch)
				r.Post("/leave", batchHandler.CreateLeaveBatch)
				r.Get("/summaries", batchHandler.ListSummaries)
				r.Put("/{id}/records", batchHandler.EditBatchRecords)
				r.With(middleware.AdminOnly).Delete("/{id}", batchHandler.DeleteBatch)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Post("/", employeeHandler.Create)
				r.Get("/", employeeHandler.ListActive)
				r.Get("/{id}", employeeHandler.Get)
				r.Put("/{id}", employeeHandler.Update)
				r.Get("/{id}/leave-balances", employeeHandler.LeaveBalances)
				r.With(middleware.AdminOnly).Put("/{id}/leave-carryover", employeeHandler.SetLeaveCarryOver)
				r.With(middleware.AdminOnly).Post("/{id}/backfill-name", employeeHandler.BackfillName)
			})

			r.With(middleware.AdminOnly).Post("/auth/users", authHandler.CreateUser)
		})
	})

	return r
}
