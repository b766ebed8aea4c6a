package presentation

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tradingfury/macroscore/internal/contracts"
)

// Watchlist selects the pairs a user wants to see
type Watchlist struct {
	Name  string           `yaml:"name"`
	Pairs []contracts.Pair `yaml:"pairs"`
}

// LoadWatchlist reads a watchlist YAML file
func LoadWatchlist(path string) (*Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	return ParseWatchlist(data)
}

// ParseWatchlist decodes and validates a watchlist.
// Unknown fields and pairs outside the enumeration are rejected.
func ParseWatchlist(data []byte) (*Watchlist, error) {
	var raw struct {
		Name  string   `yaml:"name"`
		Pairs []string `yaml:"pairs"`
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse watchlist: %w", err)
	}

	wl := &Watchlist{Name: raw.Name}
	seen := make(map[contracts.Pair]bool)
	for _, text := range raw.Pairs {
		p, ok := contracts.ParsePair(text)
		if !ok {
			return nil, fmt.Errorf("watchlist: %w: %q", contracts.ErrUnknownPair, text)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		wl.Pairs = append(wl.Pairs, p)
	}

	if len(wl.Pairs) == 0 {
		return nil, fmt.Errorf("watchlist: at least one pair is required")
	}

	return wl, nil
}

// Contains reports whether the pair is listed
func (w *Watchlist) Contains(p contracts.Pair) bool {
	for _, listed := range w.Pairs {
		if listed == p {
			return true
		}
	}
	return false
}

// Filter keeps the rows whose pair is listed, in table order
func (w *Watchlist) Filter(rows []contracts.PairScore) []contracts.PairScore {
	var out []contracts.PairScore
	for _, row := range rows {
		if w.Contains(row.Pair) {
			out = append(out, row)
		}
	}
	return out
}
