package quality

import (
	"time"

	"github.com/tradingfury/macroscore/internal/contracts"
)

// QualityGate measures how complete a record set is before it is scored
type QualityGate struct {
	config Config
}

// Config holds quality gate thresholds
type Config struct {
	MinInterestRateCoverage float64 `yaml:"min_interest_rate_coverage"` // 1.0 (100%)
	MinQualityScore         float64 `yaml:"min_quality_score"`          // 0.80
}

// DefaultConfig returns the thresholds used by the pipeline
func DefaultConfig() Config {
	return Config{
		MinInterestRateCoverage: 1.0,
		MinQualityScore:         0.80,
	}
}

// Report summarises record coverage for one snapshot
type Report struct {
	CheckedAt        time.Time                       `json:"checked_at"`
	Coverage         map[contracts.Indicator]float64 `json:"coverage"`          // share of currencies with the indicator
	CurrencyCoverage map[contracts.Currency]float64  `json:"currency_coverage"` // share of indicators per currency
	CompleteCount    int                             `json:"complete_currencies"`
	QualityScore     float64                         `json:"quality_score"`
	Passed           bool                            `json:"passed"`
}

// NewQualityGate creates a new QualityGate instance
func NewQualityGate(config Config) *QualityGate {
	return &QualityGate{config: config}
}

// Check computes coverage for the supported currencies
// ⭐ SSOT: 점수 계산 전 데이터 품질 검증
func (g *QualityGate) Check(records *contracts.RecordSet, at time.Time) *Report {
	report := &Report{
		CheckedAt:        at,
		Coverage:         make(map[contracts.Indicator]float64),
		CurrencyCoverage: make(map[contracts.Currency]float64),
	}

	currencies := contracts.Currencies()
	indicators := contracts.Indicators()

	// 1. 통화별 커버리지
	for _, c := range currencies {
		n := len(records.ForCurrency(c))
		report.CurrencyCoverage[c] = float64(n) / float64(len(indicators))
		if n == len(indicators) {
			report.CompleteCount++
		}
	}

	// 2. 지표별 커버리지
	for _, ind := range indicators {
		present := 0
		for _, c := range currencies {
			if _, ok := records.Lookup(c, ind); ok {
				present++
			}
		}
		report.Coverage[ind] = float64(present) / float64(len(currencies))
	}

	// 3. 품질 점수 계산
	report.QualityScore = g.calculateScore(report.Coverage)
	report.Passed = report.QualityScore >= g.config.MinQualityScore &&
		report.Coverage[contracts.InterestRate] >= g.config.MinInterestRateCoverage

	return report
}

// calculateScore calculates overall quality score using weighted average
func (g *QualityGate) calculateScore(coverage map[contracts.Indicator]float64) float64 {
	// 가중치 (합계 = 1.0)
	weights := map[contracts.Indicator]float64{
		contracts.InterestRate:     0.25, // 금리차 계산 필수
		contracts.GDPGrowthRate:    0.125,
		contracts.InflationRateMoM: 0.125,
		contracts.ManufacturingPMI: 0.125,
		contracts.ServicesPMI:      0.125,
		contracts.RetailSalesMoM:   0.125,
		contracts.UnemploymentRate: 0.125,
	}

	score := 0.0
	for key, weight := range weights {
		if cov, exists := coverage[key]; exists {
			score += cov * weight
		}
	}

	return score
}
