// Package hours はシフト列からの労働時間集計を提供する。
// 閉じたシフトのみを加算し、勤務中のシフトは黙って無視する。
// 出力フォーマットは小数第2位固定の時間文字列（例: "1.50"）。
package hours

import (
	"fmt"
	"sort"

	"github.com/hitoshi/kintai/internal/model"
)

// Format は時間数を小数第2位固定の文字列に変換する。
func Format(h float64) string {
	return fmt.Sprintf("%.2f", h)
}

// SumHours は閉じたシフトの経過時間（時間単位、切り捨てなし）を合計して返す。
// 勤務中のシフト（EndedAtがnil）は加算しない。
func SumHours(shifts []*model.Shift) float64 {
	var total float64
	for _, s := range shifts {
		if s.EndedAt == nil {
			continue
		}
		total += s.EndedAt.Sub(s.StartedAt).Hours()
	}
	return total
}

// Sum はSumHoursの結果をフォーマット済み文字列で返す。
// 空入力は "0.00" を返す。
func Sum(shifts []*model.Shift) string {
	return Format(SumHours(shifts))
}

// TotalsByUser はシフトを所有ユーザーごとにグループ化し、
// 各グループの閉じたシフトの合計時間数を返す。
func TotalsByUser(shifts []*model.Shift) map[string]float64 {
	totals := make(map[string]float64)
	for _, s := range shifts {
		if s.EndedAt == nil {
			continue
		}
		totals[s.UserID] += s.EndedAt.Sub(s.StartedAt).Hours()
	}
	return totals
}

// UserHours は1ユーザー分の集計結果を表す。
type UserHours struct {
	Name  string
	Hours string
}

// PerUser はシフトを所有ユーザーごとにグループ化し、各グループをSumで集計する。
// namesはユーザーIDから表示名への対応。結果は表示名の昇順で返す。
func PerUser(shifts []*model.Shift, names map[string]string) []UserHours {
	totals := TotalsByUser(shifts)

	results := make([]UserHours, 0, len(totals))
	for userID, total := range totals {
		name, ok := names[userID]
		if !ok {
			name = userID
		}
		results = append(results, UserHours{Name: name, Hours: Format(total)})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	return results
}
