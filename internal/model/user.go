// Package model はドメインモデルを定義する。
package model

import "time"

// User は勤怠を記録する従業員を表す。
// 表示名による簡易ログインで初回に作成され、以降は不変として扱う。
type User struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
