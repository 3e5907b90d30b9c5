package handler

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/kintai/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	StatusObserver    middleware.StatusObserver
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// サービス
	TrackerService TrackerServiceInterface
	ReportService  ReportServiceInterface

	// メトリクス（nil可）
	ClockMetrics ClockMetrics

	// ヘルスチェック
	HealthChecker HealthChecker

	// Prometheusスクレイプ用ハンドラー（nil可）
	MetricsHandler http.Handler

	// 静的ファイル配信ディレクトリ
	PublicDir string
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → SecurityHeaders → CORS → RateLimit
//
// /health はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger, deps.StatusObserver))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	shiftHandler := NewShiftHandler(deps.TrackerService, deps.ClockMetrics)
	reportHandler := NewReportHandler(deps.ReportService)
	healthHandler := NewHealthHandler(deps.HealthChecker)

	// ヘルスチェック（レート制限の外）
	r.Get("/health", healthHandler.Health)

	// Prometheusスクレイプ用（レート制限の外）
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- APIルート ---
	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		// 打刻
		r.Post("/login", shiftHandler.Login)
		r.Post("/entrada", shiftHandler.ClockIn)
		r.Post("/salida", shiftHandler.ClockOut)

		// 一覧・集計
		r.Get("/registros", reportHandler.ListShifts)
		r.Get("/contador-semanal/{userId}", reportHandler.WeeklyCounter)
		r.Get("/contador-mensual/{userId}", reportHandler.MonthlyCounter)
		r.Get("/resumen-semanal", reportHandler.WeeklySummary)
		r.Get("/resumen-mensual", reportHandler.MonthlySummary)
	})

	// 静的ファイル配信。"/" はエントリーページ（index.html）を返す
	if deps.PublicDir != "" {
		fs := http.FileServer(http.Dir(deps.PublicDir))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, filepath.Join(deps.PublicDir, "index.html"))
		})
		r.Handle("/*", fs)
	}

	return r
}
