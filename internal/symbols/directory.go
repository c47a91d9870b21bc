// Package symbols resolves free-form company names to ticker symbols using an
// embedded, ordered directory.
package symbols

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed symbols.yaml
var directoryYAML []byte

// Entry is one company-name variant and its ticker.
type Entry struct {
	Name   string `yaml:"name"`
	Ticker string `yaml:"ticker"`
}

// Suggestion is a search hit.
type Suggestion struct {
	Ticker  string `json:"ticker"`
	Name    string `json:"name"`
	Display string `json:"display"`
}

// Directory is an immutable ordered name→ticker table.
type Directory struct {
	entries []Entry
	byName  map[string]string
}

var defaultDirectory = mustParse(directoryYAML)

// Default returns the embedded directory.
func Default() *Directory { return defaultDirectory }

func mustParse(data []byte) *Directory {
	d, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("symbols: embedded directory: %v", err))
	}
	return d
}

// Parse builds a Directory from a YAML list of entries. Order is preserved; a
// repeated name keeps its first position and takes the last ticker.
func Parse(data []byte) (*Directory, error) {
	var raw []Entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse directory: %w", err)
	}
	d := &Directory{byName: make(map[string]string, len(raw))}
	pos := make(map[string]int, len(raw))
	for _, e := range raw {
		if e.Name == "" || e.Ticker == "" {
			return nil, fmt.Errorf("parse directory: incomplete entry %+v", e)
		}
		if i, ok := pos[e.Name]; ok {
			d.entries[i].Ticker = e.Ticker
		} else {
			pos[e.Name] = len(d.entries)
			d.entries = append(d.entries, e)
		}
		d.byName[e.Name] = e.Ticker
	}
	return d, nil
}

// Len returns the number of distinct names.
func (d *Directory) Len() int { return len(d.entries) }

var companySuffixes = []string{
	" inc", " incorporated", " corp", " corporation",
	" ltd", " limited", " llc", " co", " company",
	" group", " holdings", " technologies", " systems",
	" plc", " sa", " ag", " gmbh", " the",
}

// NormalizeCompanyName lower-cases name, drops , . and ' and strips common
// corporate suffixes (each checked once, in order) and a leading "the ".
func NormalizeCompanyName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.NewReplacer(",", "", ".", "", "'", "").Replace(name)
	for _, s := range companySuffixes {
		if strings.HasSuffix(name, s) {
			name = strings.TrimSpace(strings.TrimSuffix(name, s))
		}
	}
	if strings.HasPrefix(name, "the ") {
		name = strings.TrimSpace(name[len("the "):])
	}
	return name
}

// FindTicker resolves a company name or ticker to a ticker. Short all-caps
// input is taken as a ticker. Otherwise the normalized name is looked up
// exactly, then by substring in either direction in directory order. Unknown
// input is returned upper-cased.
func (d *Directory) FindTicker(input string) string {
	input = strings.TrimSpace(input)
	if len([]rune(input)) <= 5 && isUpper(input) {
		return input
	}

	normalized := NormalizeCompanyName(input)
	if t, ok := d.byName[normalized]; ok {
		return t
	}
	if normalized != "" {
		for _, e := range d.entries {
			if strings.Contains(e.Name, normalized) || strings.Contains(normalized, e.Name) {
				return e.Ticker
			}
		}
	}
	return strings.ToUpper(input)
}

// Search returns up to limit suggestions whose name or ticker contains query,
// one per ticker, in directory order. Queries shorter than 2 characters match
// nothing.
func (d *Directory) Search(query string, limit int) []Suggestion {
	q := strings.TrimSpace(strings.ToLower(query))
	if len([]rune(q)) < 2 || limit <= 0 {
		return []Suggestion{}
	}

	out := []Suggestion{}
	seen := make(map[string]bool)
	for _, e := range d.entries {
		if seen[e.Ticker] {
			continue
		}
		if !strings.Contains(e.Name, q) && !strings.Contains(strings.ToLower(e.Ticker), q) {
			continue
		}
		name := titleCase(e.Name)
		out = append(out, Suggestion{
			Ticker:  e.Ticker,
			Name:    name,
			Display: e.Ticker + " - " + name,
		})
		seen[e.Ticker] = true
		if len(out) >= limit {
			break
		}
	}
	return out
}

// Tickers returns every distinct ticker, sorted.
func (d *Directory) Tickers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range d.entries {
		if !seen[e.Ticker] {
			seen[e.Ticker] = true
			out = append(out, e.Ticker)
		}
	}
	sort.Strings(out)
	return out
}

// CompaniesFor returns every name variant mapped to ticker.
func (d *Directory) CompaniesFor(ticker string) []string {
	var out []string
	for _, e := range d.entries {
		if e.Ticker == ticker {
			out = append(out, e.Name)
		}
	}
	return out
}

// IsValidTicker reports whether s looks like a ticker: 1-6 characters of
// A-Z, '.' or '-' after trimming and upper-casing.
func IsValidTicker(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || len(s) > 6 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && r != '.' && r != '-' {
			return false
		}
	}
	return true
}

// isUpper reports whether s has at least one cased rune and no lower-case ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "at&t" becomes "At&T".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
