package contracts

import "context"

// PageFetcher retrieves the raw indicator page of a country
// ⭐ SSOT: 페이지 수집 인터페이스
type PageFetcher interface {
	FetchIndicatorsPage(ctx context.Context, country Country) (string, error)
}

// PageParser extracts (name, last, previous) text triples from a page
type PageParser interface {
	ParseIndicators(html string) ([]ParsedRow, error)
}

// ParsedRow is a purely textual row extracted from a page
type ParsedRow struct {
	Name     string
	Last     string
	Previous string
}
