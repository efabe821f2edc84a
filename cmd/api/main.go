package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/httplog/v3"

	"github.com/sdgtech/payroll-backend-go/internal/config"
	"github.com/sdgtech/payroll-backend-go/internal/domain/currency"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/fixtures"
	appHTTP "github.com/sdgtech/payroll-backend-go/internal/handler/http"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/cron"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/database"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/docstore"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/jwt"
	payslipDoc "github.com/sdgtech/payroll-backend-go/internal/pkg/payslip"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/storage"
	"github.com/sdgtech/payroll-backend-go/internal/repository/memory"
	"github.com/sdgtech/payroll-backend-go/internal/repository/postgresql"
	"github.com/sdgtech/payroll-backend-go/internal/repository/sheets"
	"github.com/sdgtech/payroll-backend-go/internal/repository/sqlite"
	"github.com/sdgtech/payroll-backend-go/internal/repository/workbook"
	currencyService "github.com/sdgtech/payroll-backend-go/internal/service/currency"
	dashboardService "github.com/sdgtech/payroll-backend-go/internal/service/dashboard"
	employeeService "github.com/sdgtech/payroll-backend-go/internal/service/employee"
	leaveService "github.com/sdgtech/payroll-backend-go/internal/service/leave"
	payrollService "github.com/sdgtech/payroll-backend-go/internal/service/payroll"
	payslipService "github.com/sdgtech/payroll-backend-go/internal/service/payslip"
	reportService "github.com/sdgtech/payroll-backend-go/internal/service/report"
)

const (
	appName    = "payroll-backend"
	appVersion = "v1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})))

	reporting, err := currency.Parse(cfg.App.Reporting)
	if err != nil {
		log.Fatal("Unsupported REPORTING_CURRENCY: ", cfg.App.Reporting)
	}

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open document store: ", err)
	}
	defer closeStore()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	wb := workbook.New(store, payroll.Settings{DefaultExchangeRate: cfg.Payroll.DefaultExchangeRate})
	converter := currencyService.NewConverter(reporting)

	if cfg.App.SeedDemo {
		if err := fixtures.SeedDemo(ctx, wb, store); err != nil {
			log.Fatal("Failed to seed demo data: ", err)
		}
		slog.Info("demo data seeded")
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	employeeSvc := employeeService.NewEmployeeService(wb)
	payrollSvc := payrollService.NewPayrollService(wb)
	dashboardSvc := dashboardService.NewDashboardService(wb, converter)
	payslipSvc := payslipService.NewPayslipService(wb, payslipDoc.NewPDFRenderer(), fileStorage, payslipService.Header{
		Employer:  cfg.App.Employer,
		Reporting: reporting,
	})
	leaveSvc := leaveService.NewLeaveService(wb)

	if cfg.Payroll.AutoGenerate {
		scheduler := cron.NewScheduler()
		cron.NewPayrollJobs(payrollSvc).RegisterJobs(scheduler, cfg.Payroll.AutoGenerateInterval)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}
	reportSvc := reportService.NewReportService(wb, converter)

	router := appHTTP.NewRouter(
		appHTTP.AppInfo{
			Name:           appName,
			Version:        appVersion,
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.NewPayslipHandler(payslipSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewArchiveHandler(fileStorage),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("server starting", "addr", port, "store", cfg.Store.Backend, "reporting", reporting.String())
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

// openStore builds the document store selected by STORE_BACKEND.
func openStore(ctx context.Context, cfg *config.Config) (docstore.Store, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.StoreMemory:
		slog.Warn("using in-memory document store, data is lost on restart")
		return memory.NewStore(), noop, nil
	case config.StoreSQLite:
		store, err := sqlite.New(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		store, err := postgresql.NewDocumentStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil
	case config.StoreSheets:
		store, err := sheets.NewFromCredentialsFile(ctx, cfg.Store.SpreadsheetID, cfg.Store.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}
