// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// 既存フロントエンドに表示する原因カテゴリと対処方法を含む。
// MessageとActionはレガシーAPIとの互換上スペイン語で返す。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, state, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeNameRequired     = "NAME_REQUIRED"
	ErrCodeUserIDRequired   = "USER_ID_REQUIRED"
	ErrCodeNoActiveShift    = "NO_ACTIVE_SHIFT"
	ErrCodeShiftAlreadyOpen = "SHIFT_ALREADY_OPEN"
)

// NewNameRequiredError は表示名未指定エラーを生成する。
func NewNameRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeNameRequired,
		Message:  "Nombre requerido",
		Category: "validation",
		Action:   "Introduce un nombre para iniciar sesión.",
	}
}

// NewUserIDRequiredError はユーザーID未指定エラーを生成する。
func NewUserIDRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeUserIDRequired,
		Message:  "userId requerido",
		Category: "validation",
		Action:   "Inicia sesión de nuevo para obtener tu userId.",
	}
}

// NewNoActiveShiftError は退勤対象のオープンシフトが存在しないエラーを生成する。
func NewNoActiveShiftError() *APIError {
	return &APIError{
		Code:     ErrCodeNoActiveShift,
		Message:  "No hay turno activo",
		Category: "state",
		Action:   "Registra primero una entrada.",
	}
}

// NewShiftAlreadyOpenError はオープンシフトが既に存在する状態での出勤エラーを生成する。
func NewShiftAlreadyOpenError() *APIError {
	return &APIError{
		Code:     ErrCodeShiftAlreadyOpen,
		Message:  "Ya existe un turno activo",
		Category: "state",
		Action:   "Registra la salida del turno anterior antes de abrir otro.",
	}
}
