package presentation

import "github.com/tradingfury/macroscore/internal/contracts"

// PairView is a pair row decorated for display
type PairView struct {
	contracts.PairScore
	Bias  string `json:"bias"`
	Color string `json:"color"`
}

// PairViews decorates the rows of a pair table with bias and gradient colour.
// When byScore is set the rows follow the bar chart order.
func PairViews(table *contracts.PairScoreTable, byScore bool) []PairView {
	rows := table.Rows()
	if byScore {
		rows = table.ByFinalScore()
	}

	min, max, _ := table.MinMax()
	views := make([]PairView, 0, len(rows))
	for _, row := range rows {
		views = append(views, PairView{
			PairScore: row,
			Bias:      row.Bias(),
			Color:     Gradient(row.FinalScore, min, max).CSS(),
		})
	}
	return views
}
