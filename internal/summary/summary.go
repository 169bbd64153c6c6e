// Package summary computes the monthly dashboard aggregates: income
// and expense totals, the per-category expense breakdown, the daily
// spending series, and the no-spend challenge statistics. Everything
// in this package is a pure function of its inputs and an explicit
// reference instant; no I/O, no ambient clock, no shared state.
package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"pennywise/internal/models"
)

// UncategorizedName is the display name for the synthetic bucket
// holding expenses with no (or an unresolvable) category reference.
const UncategorizedName = "Uncategorized"

// LowSpendThreshold is the per-day expense total at or below which a
// day with spending still counts toward the low-spend challenge.
var LowSpendThreshold = decimal.NewFromInt(20)

// Transaction is the engine's view of a stored transaction, matching
// the persistence gateway's wire shape. Date is a "YYYY-MM-DD"
// string; a record with a missing or unparseable date is silently
// excluded from month-scoped computations.
type Transaction struct {
	ID          uint                   `json:"id"`
	Date        string                 `json:"date"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        models.TransactionType `json:"type"`
	CategoryID  *uint                  `json:"category_id"`
}

// Category is the engine's view of a stored category.
type Category struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryExpense is one entry of the month's expense breakdown. A
// nil CategoryID marks the synthetic Uncategorized bucket.
type CategoryExpense struct {
	CategoryID *uint           `json:"category_id"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
}

// DailySpend is the expense total for one day of the reference
// month. Days with zero expense are omitted from the series.
type DailySpend struct {
	Day   int             `json:"day"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// StreakStats holds the no-spend challenge counters, computed over
// the elapsed portion of the reference month only.
type StreakStats struct {
	NoSpendDays          int `json:"no_spend_days"`
	BestNoSpendStreak    int `json:"best_no_spend_streak"`
	CurrentNoSpendStreak int `json:"current_no_spend_streak"`
	LowSpendDaysCount    int `json:"low_spend_days_count"`
}

// MonthlySummary is the full aggregation output for one calendar
// month. All fields are plain data, safe to serialize as-is.
type MonthlySummary struct {
	Month             string            `json:"month"`
	TotalExpense      decimal.Decimal   `json:"total_expense"`
	TotalIncome       decimal.Decimal   `json:"total_income"`
	Net               decimal.Decimal   `json:"net"`
	CategoryBreakdown []CategoryExpense `json:"category_breakdown"`
	DailySeries       []DailySpend      `json:"daily_series"`
	Streaks           StreakStats       `json:"streaks"`
	RecentFive        []Transaction     `json:"recent_five"`
}

// Compute derives the dashboard summary for the calendar month of
// ref from a full snapshot of a user's transactions and categories.
// Month membership is decided by "YYYY-MM" equality on the
// transaction date, never by a rolling window. RecentFive is the one
// field that looks outside the reference month.
func Compute(txs []Transaction, cats []Category, ref time.Time) MonthlySummary {
	month := ref.Format(models.MonthLayout)
	daysInMonth := lastDayOfMonth(ref)

	s := MonthlySummary{
		Month:             month,
		TotalExpense:      decimal.Zero,
		TotalIncome:       decimal.Zero,
		Net:               decimal.Zero,
		CategoryBreakdown: []CategoryExpense{},
		DailySeries:       []DailySpend{},
		RecentFive:        []Transaction{},
	}

	names := make(map[uint]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	// Per-day expense totals for the reference month, indexed
	// 1..daysInMonth. Both the daily series and the streak scan read
	// from this one slice so their zero-day classifications cannot
	// drift apart.
	totalsByDay := make([]decimal.Decimal, daysInMonth+1)
	for i := range totalsByDay {
		totalsByDay[i] = decimal.Zero
	}

	byCategory := make(map[uint]decimal.Decimal)
	var categoryOrder []uint
	uncategorized := decimal.Zero
	sawUncategorized := false

	for _, tx := range txs {
		day, ok := dayWithinMonth(tx.Date, month)
		if !ok {
			continue
		}

		switch tx.Type {
		case models.TransactionTypeIncome:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case models.TransactionTypeExpense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
			if day >= 1 && day <= daysInMonth {
				totalsByDay[day] = totalsByDay[day].Add(tx.Amount)
			}
			if tx.CategoryID == nil {
				uncategorized = uncategorized.Add(tx.Amount)
				sawUncategorized = true
			} else {
				id := *tx.CategoryID
				if _, seen := byCategory[id]; !seen {
					categoryOrder = append(categoryOrder, id)
				}
				byCategory[id] = byCategory[id].Add(tx.Amount)
			}
		}
	}
	s.Net = s.TotalIncome.Sub(s.TotalExpense)

	// Breakdown covers exactly the categories that appeared among
	// this month's expenses. An id with no matching category record
	// still gets its own bucket, displayed as Uncategorized.
	for _, id := range categoryOrder {
		id := id
		name, ok := names[id]
		if !ok {
			name = UncategorizedName
		}
		s.CategoryBreakdown = append(s.CategoryBreakdown, CategoryExpense{
			CategoryID: &id,
			Name:       name,
			Total:      byCategory[id],
		})
	}
	if sawUncategorized {
		s.CategoryBreakdown = append(s.CategoryBreakdown, CategoryExpense{
			Name:  UncategorizedName,
			Total: uncategorized,
		})
	}

	// Sparse daily series over the whole month.
	for d := 1; d <= daysInMonth; d++ {
		if totalsByDay[d].IsPositive() {
			s.DailySeries = append(s.DailySeries, DailySpend{
				Day:   d,
				Label: fmt.Sprintf("%d/%d", int(ref.Month()), d),
				Total: totalsByDay[d],
			})
		}
	}

	s.Streaks = computeStreaks(totalsByDay, ref.Day())
	s.RecentFive = recentFive(txs)

	return s
}

// computeStreaks scans days 1..today of the shared per-day totals.
// Future days of the month are never inspected.
func computeStreaks(totalsByDay []decimal.Decimal, today int) StreakStats {
	var st StreakStats
	streak := 0

	if today > len(totalsByDay)-1 {
		today = len(totalsByDay) - 1
	}

	for d := 1; d <= today; d++ {
		total := totalsByDay[d]
		if total.IsZero() {
			st.NoSpendDays++
			streak++
			if streak > st.BestNoSpendStreak {
				st.BestNoSpendStreak = streak
			}
		} else {
			if total.LessThanOrEqual(LowSpendThreshold) {
				st.LowSpendDaysCount++
			}
			streak = 0
		}
	}

	// The trailing run of zero days, including today if today had no
	// spending.
	st.CurrentNoSpendStreak = streak
	return st
}

// recentFive returns the five most recent transactions across all
// months, ordered by date descending with id descending as the
// tie-break for same-date entries. The input slice is not mutated.
func recentFive(txs []Transaction) []Transaction {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].ID > sorted[j].ID
	})

	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	return sorted
}

// dayWithinMonth reports the day-of-month of date when it parses and
// falls inside month, or ok=false otherwise. Records with dirty
// dates degrade gracefully instead of failing the whole summary.
func dayWithinMonth(date, month string) (day int, ok bool) {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return 0, false
	}
	if t.Format(models.MonthLayout) != month {
		return 0, false
	}
	return t.Day(), true
}

// lastDayOfMonth computes the real length of the reference month,
// leap years included.
func lastDayOfMonth(ref time.Time) int {
	return time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
