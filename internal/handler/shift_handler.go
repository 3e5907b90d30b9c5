package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/kintai/internal/model"
)

// TrackerServiceInterface は打刻ハンドラーが必要とするサービスインターフェース。
type TrackerServiceInterface interface {
	// Login は表示名でユーザーを作成または取得する。
	Login(ctx context.Context, name string) (*model.User, error)
	// ClockIn はユーザーの新しいオープンシフトを作成する。
	ClockIn(ctx context.Context, userID string) (*model.Shift, error)
	// ClockOut はユーザーの最新のオープンシフトを閉じて返す。
	ClockOut(ctx context.Context, userID string) (*model.Shift, error)
}

// ClockMetrics は打刻イベントのメトリクス記録インターフェース。
// nilの場合は記録しない。
type ClockMetrics interface {
	RecordClockIn()
	RecordClockOut()
}

// ShiftHandler は打刻操作のHTTPハンドラー。
type ShiftHandler struct {
	service TrackerServiceInterface
	metrics ClockMetrics
}

// NewShiftHandler はShiftHandlerを生成する。
func NewShiftHandler(service TrackerServiceInterface, metrics ClockMetrics) *ShiftHandler {
	return &ShiftHandler{
		service: service,
		metrics: metrics,
	}
}

// loginRequest はログインリクエストのボディ。
// フィールド名はレガシーフロントエンドとの互換上スペイン語。
type loginRequest struct {
	Nombre string `json:"nombre"`
}

// clockRequest は出勤・退勤リクエストのボディ。
type clockRequest struct {
	UserID string `json:"userId"`
}

// userResponse はユーザー情報のAPIレスポンス。
type userResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// shiftResponse はシフト1件のAPIレスポンス（registro）。
type shiftResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Entrada     time.Time  `json:"entrada"`
	Salida      *time.Time `json:"salida"`
	TiempoTotal *int64     `json:"tiempo_total,omitempty"`
}

// clockInResponse は出勤レスポンス。
type clockInResponse struct {
	Success  bool          `json:"success"`
	Registro shiftResponse `json:"registro"`
}

// clockOutResponse は退勤レスポンス。閉じたシフトと経過分数を返す。
type clockOutResponse struct {
	Success  bool          `json:"success"`
	Registro shiftResponse `json:"registro"`
	Minutos  int64         `json:"minutos"`
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// Login は名前によるログインを処理する。
// POST /login
func (h *ShiftHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, newInvalidRequestError())
		return
	}

	user, err := h.service.Login(r.Context(), req.Nombre)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userResponse{
		ID:     user.ID,
		Nombre: user.Name,
	})
}

// ClockIn は出勤打刻を処理する。
// POST /entrada
func (h *ShiftHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req clockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, newInvalidRequestError())
		return
	}

	shift, err := h.service.ClockIn(r.Context(), req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordClockIn()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(clockInResponse{
		Success:  true,
		Registro: toShiftResponse(shift),
	})
}

// ClockOut は退勤打刻を処理する。
// POST /salida
func (h *ShiftHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req clockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, newInvalidRequestError())
		return
	}

	shift, err := h.service.ClockOut(r.Context(), req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordClockOut()
	}

	var minutes int64
	if shift.TotalMinutes != nil {
		minutes = *shift.TotalMinutes
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(clockOutResponse{
		Success:  true,
		Registro: toShiftResponse(shift),
		Minutos:  minutes,
	})
}

// --- ヘルパー関数 ---

// toShiftResponse はmodel.ShiftからAPIレスポンスに変換する。
func toShiftResponse(shift *model.Shift) shiftResponse {
	return shiftResponse{
		ID:          shift.ID,
		UserID:      shift.UserID,
		Entrada:     shift.StartedAt,
		Salida:      shift.EndedAt,
		TiempoTotal: shift.TotalMinutes,
	}
}

// newInvalidRequestError はJSONボディ解析失敗のエラーを生成する。
func newInvalidRequestError() *model.APIError {
	return &model.APIError{
		Code:     "INVALID_REQUEST",
		Message:  "Cuerpo de la petición inválido",
		Category: "validation",
		Action:   "Envía un JSON válido.",
	}
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
// APIError以外のエラーは詳細をログのみに残し、クライアントには一般的なメッセージを返す。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "Error interno del servidor",
		Category: "system",
		Action:   "Intenta de nuevo más tarde",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeNameRequired, model.ErrCodeUserIDRequired:
		return http.StatusBadRequest
	case model.ErrCodeNoActiveShift, model.ErrCodeShiftAlreadyOpen:
		return http.StatusBadRequest
	case "INVALID_REQUEST":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
