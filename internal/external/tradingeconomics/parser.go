package tradingeconomics

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tradingfury/macroscore/internal/contracts"
)

// Parser extracts indicator rows from an indicators page
type Parser struct{}

// ParseIndicators returns every table body row with at least three cells as
// (name, last, previous) text. Values are not validated here.
func (Parser) ParseIndicators(html string) ([]contracts.ParsedRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse indicators page: %w", err)
	}

	var rows []contracts.ParsedRow
	doc.Find("tbody > tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		rows = append(rows, contracts.ParsedRow{
			Name:     cellText(cells.Eq(0)),
			Last:     cellText(cells.Eq(1)),
			Previous: cellText(cells.Eq(2)),
		})
	})

	return rows, nil
}

// cellText collapses inner whitespace the way a stripped text read does
func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
