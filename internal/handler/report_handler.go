package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/kintai/internal/hours"
	"github.com/hitoshi/kintai/internal/repository"
)

// ReportServiceInterface は集計ハンドラーが必要とするサービスインターフェース。
type ReportServiceInterface interface {
	// ListShifts は全シフトをユーザー名付きで新しい順に返す。
	ListShifts(ctx context.Context) ([]repository.ShiftWithName, error)
	// WeeklyHours は今週の稼働時間を整形済み文字列で返す。
	WeeklyHours(ctx context.Context, userID string) (string, error)
	// MonthlyHours は今月の稼働時間を整形済み文字列で返す。
	MonthlyHours(ctx context.Context, userID string) (string, error)
	// WeeklyBreakdown は今週のユーザー別稼働時間を返す。
	WeeklyBreakdown(ctx context.Context) ([]hours.UserHours, error)
	// MonthlyBreakdown は今月のユーザー別稼働時間を返す。
	MonthlyBreakdown(ctx context.Context) ([]hours.UserHours, error)
}

// ReportHandler は集計・一覧のHTTPハンドラー。
type ReportHandler struct {
	service ReportServiceInterface
}

// NewReportHandler はReportHandlerを生成する。
func NewReportHandler(service ReportServiceInterface) *ReportHandler {
	return &ReportHandler{service: service}
}

// shiftRowResponse はシフト一覧1行のAPIレスポンス。
// tiempo_totalはオープンシフトでは省略される。
type shiftRowResponse struct {
	ID          string     `json:"id"`
	Nombre      string     `json:"nombre"`
	Entrada     time.Time  `json:"entrada"`
	Salida      *time.Time `json:"salida"`
	TiempoTotal *int64     `json:"tiempo_total,omitempty"`
}

// counterResponse は個人カウンターのAPIレスポンス。
type counterResponse struct {
	UserID string `json:"userId"`
	Horas  string `json:"horas"`
}

// summaryRowResponse はユーザー別サマリー1行のAPIレスポンス。
type summaryRowResponse struct {
	Nombre string `json:"nombre"`
	Horas  string `json:"horas"`
}

// ListShifts は全シフトの一覧を返す。
// GET /registros
func (h *ReportHandler) ListShifts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListShifts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]shiftRowResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, shiftRowResponse{
			ID:          row.ID,
			Nombre:      row.UserName,
			Entrada:     row.StartedAt,
			Salida:      row.EndedAt,
			TiempoTotal: row.TotalMinutes,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// WeeklyCounter は今週の個人稼働時間を返す。
// GET /contador-semanal/{userId}
func (h *ReportHandler) WeeklyCounter(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	horas, err := h.service.WeeklyHours(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(counterResponse{
		UserID: userID,
		Horas:  horas,
	})
}

// MonthlyCounter は今月の個人稼働時間を返す。
// GET /contador-mensual/{userId}
func (h *ReportHandler) MonthlyCounter(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	horas, err := h.service.MonthlyHours(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(counterResponse{
		UserID: userID,
		Horas:  horas,
	})
}

// WeeklySummary は今週のユーザー別稼働時間一覧を返す。
// GET /resumen-semanal
func (h *ReportHandler) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.service.WeeklyBreakdown(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSummaryResponse(w, breakdown)
}

// MonthlySummary は今月のユーザー別稼働時間一覧を返す。
// GET /resumen-mensual
func (h *ReportHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.service.MonthlyBreakdown(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSummaryResponse(w, breakdown)
}

// writeSummaryResponse はユーザー別サマリーをJSONで書き込む。
func writeSummaryResponse(w http.ResponseWriter, breakdown []hours.UserHours) {
	resp := make([]summaryRowResponse, 0, len(breakdown))
	for _, uh := range breakdown {
		resp = append(resp, summaryRowResponse{
			Nombre: uh.Name,
			Horas:  uh.Hours,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
