// Package period は集計期間の境界計算を提供する。
// 週は月曜0時始まり、月は1日0時始まり。すべて副作用なしの純粋関数で、
// 現在時刻は必ず引数で注入する（テストの決定性のため）。
package period

import "time"

// WeekStart はnowが属する週の月曜0:00:00を返す。
// time.WeekdayはSunday=0なので、日曜は6日前の月曜へ戻す。
// タイムゾーンはnowのLocationを維持する。
func WeekStart(now time.Time) time.Time {
	offset := int(now.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6 // 日曜
	}
	monday := now.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
}

// MonthStart はnowが属する月の1日0:00:00を返す。
// タイムゾーンはnowのLocationを維持する。
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
