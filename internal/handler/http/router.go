package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/sdgtech/payroll-backend-go/internal/handler/http/middleware"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/jwt"
)

// AppInfo labels request logs.
type AppInfo struct {
	Name           string
	Version        string
	Env            string
	AllowedOrigins []string
}

func NewRouter(
	app AppInfo,
	JWTService jwt.Service,
	employeeHandler EmployeeHandler,
	payrollHandler PayrollHandler,
	dashboardHandler DashboardHandler,
	payslipHandler PayslipHandler,
	leaveHandler LeaveHandler,
	reportHandler ReportHandler,
	archiveHandler ArchiveHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app.Name),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Archive-URL", "X-Payslip-Diagnostics"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Post("/", employeeHandler.CreateEmployee)

				r.Route("/{name}", func(r chi.Router) {
					r.Get("/", employeeHandler.GetEmployee)
					r.Patch("/", employeeHandler.UpdateEmployee)
					r.Delete("/", employeeHandler.DeleteEmployee)
					r.Post("/increment", employeeHandler.ApplyIncrement)
					r.Post("/bonus", employeeHandler.RecordBonus)
					r.Get("/leaves", leaveHandler.ListEmployeeLeaves)
					r.Get("/payroll/last", payrollHandler.GetLastRecord)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/settings", payrollHandler.GetSettings)
				r.Put("/settings", payrollHandler.UpdateSettings)

				r.Post("/generate", payrollHandler.GeneratePayroll)
				r.Get("/lookup", payrollHandler.LookupPayrollRecord)

				r.Route("/records", func(r chi.Router) {
					r.Get("/", payrollHandler.ListPayrollRecords)
					r.Put("/", payrollHandler.SavePayrollRecord)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetPayrollRecord)
						r.Patch("/status", payrollHandler.UpdateStatus)
						r.Post("/toggle", payrollHandler.ToggleStatus)
						r.Get("/payslip", payslipHandler.DownloadPayslip)
					})
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", dashboardHandler.GetDashboard)
				r.Get("/monthly-total", dashboardHandler.GetMonthlyTotal)
				r.Get("/year-series", dashboardHandler.GetYearSeries)
				r.Get("/headcount", dashboardHandler.GetHeadcount)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/payroll-register", reportHandler.GetPayrollRegister)
				r.Get("/payroll-register/export", reportHandler.ExportPayrollRegister)
			})

			r.Get("/archive/*", archiveHandler.GetFile)
		})
	})

	return r
}
