package summary

import "github.com/shopspring/decimal"

// CategoryBudgetStatus pairs one breakdown entry with its stored
// budget for the month. A nil Budget/UsedPercent means no budget is
// set for the category, which is distinct from 0% used.
type CategoryBudgetStatus struct {
	CategoryID  *uint            `json:"category_id"`
	Name        string           `json:"name"`
	Spent       decimal.Decimal  `json:"spent"`
	Budget      *decimal.Decimal `json:"budget"`
	UsedPercent *float64         `json:"used_percent"`
	OverBudget  bool             `json:"over_budget"`
}

// BudgetEvaluation layers stored budget amounts over a computed
// summary, at global and per-category granularity.
type BudgetEvaluation struct {
	Month       string                 `json:"month"`
	Budget      decimal.Decimal        `json:"budget"`
	Spent       decimal.Decimal        `json:"spent"`
	UsedPercent float64                `json:"used_percent"`
	OverBudget  bool                   `json:"over_budget"`
	Categories  []CategoryBudgetStatus `json:"categories"`
}

// Evaluate combines a monthly summary with the month's stored budget
// figures. A zero (or absent) budget means "no budget set": the
// utilization is 0 and the over-budget flag stays false no matter
// how much was spent. Like Compute, this is a pure function.
func Evaluate(s MonthlySummary, globalBudget decimal.Decimal, categoryBudgets map[uint]decimal.Decimal) BudgetEvaluation {
	ev := BudgetEvaluation{
		Month:       s.Month,
		Budget:      globalBudget,
		Spent:       s.TotalExpense,
		UsedPercent: usedPercent(s.TotalExpense, globalBudget),
		OverBudget:  globalBudget.IsPositive() && s.TotalExpense.GreaterThan(globalBudget),
		Categories:  []CategoryBudgetStatus{},
	}

	for _, ce := range s.CategoryBreakdown {
		st := CategoryBudgetStatus{
			CategoryID: ce.CategoryID,
			Name:       ce.Name,
			Spent:      ce.Total,
		}
		if ce.CategoryID != nil {
			if budget, ok := categoryBudgets[*ce.CategoryID]; ok && budget.IsPositive() {
				budget := budget
				pct := usedPercent(ce.Total, budget)
				st.Budget = &budget
				st.UsedPercent = &pct
				st.OverBudget = ce.Total.GreaterThan(budget)
			}
		}
		ev.Categories = append(ev.Categories, st)
	}

	return ev
}

// usedPercent is the zero-guarded utilization percentage. Division
// by a zero budget is defined as 0, never infinity or NaN.
func usedPercent(spent, budget decimal.Decimal) float64 {
	if !budget.IsPositive() {
		return 0
	}
	pct, _ := spent.Div(budget).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
