// Package chart parses the Pinyin chart table into syllable cells.
//
// The table is laid out with finals across the header row and initials down
// the header column; the last row and the last column repeat the headers
// and carry no data. Any deviation from that layout means the page changed
// and is reported as ErrStructure.
package chart

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TableSelector locates the chart in the page.
const TableSelector = "table#pinyin-table"

// ErrStructure reports a chart that no longer has the expected layout.
var ErrStructure = errors.New("unexpected chart structure")

// headerRe matches header ids: "b-" for an initial, "-a" for a final.
var headerRe = regexp.MustCompile(`^(?P<is_final>-)?(?P<id>[∅a-uüw-z*]+)(?P<is_initial>-)?$`)

// Cell is one syllable of the chart.
type Cell struct {
	ID        string
	Initial   string
	Final     string
	Pinyin    string
	Zhuyin    string
	WadeGiles string
	IPA       string // bracketed, as printed in the chart
	URL       string
}

type header struct {
	id      string
	initial bool
	final   bool
}

func parseHeader(s string) (header, bool) {
	m := headerRe.FindStringSubmatch(s)
	if m == nil {
		return header{}, false
	}
	return header{
		id:      m[headerRe.SubexpIndex("id")],
		initial: m[headerRe.SubexpIndex("is_initial")] != "",
		final:   m[headerRe.SubexpIndex("is_final")] != "",
	}, true
}

// parseInitial accepts a row header id such as "zh-".
func parseInitial(s string) (string, error) {
	h, ok := parseHeader(s)
	if !ok || h.final || !h.initial {
		return "", fmt.Errorf("%w: unexpected initial %q", ErrStructure, s)
	}
	return h.id, nil
}

// parseFinal accepts a column header id such as "-iong".
func parseFinal(s string) (string, error) {
	h, ok := parseHeader(s)
	if !ok || h.initial || !h.final {
		return "", fmt.Errorf("%w: unexpected final %q", ErrStructure, s)
	}
	return h.id, nil
}

// Parse extracts every syllable cell of the chart, row by row.
func Parse(doc *goquery.Document) ([]Cell, error) {
	table := doc.Find(TableSelector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: %s not found", ErrStructure, TableSelector)
	}

	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil, fmt.Errorf("%w: table has no rows", ErrStructure)
	}
	finals := rows.First().Find("th,td")

	var (
		cells []Cell
		seen  = make(map[string]struct{})
	)
	for r := 1; r < rows.Length()-1; r++ {
		cols := rows.Eq(r).Find("th,td")
		if cols.Length() == 0 {
			return nil, fmt.Errorf("%w: row %d is empty", ErrStructure, r)
		}
		initialID, _ := cols.First().Attr("id")
		initial, err := parseInitial(initialID)
		if err != nil {
			return nil, err
		}

		for c := 1; c < cols.Length()-1; c++ {
			td := cols.Eq(c)
			id, ok := td.Attr("id")
			if !ok {
				continue
			}

			if c >= finals.Length() {
				return nil, fmt.Errorf("%w: cell %q in column %d has no header", ErrStructure, id, c)
			}
			finalID, _ := finals.Eq(c).Attr("id")
			final, err := parseFinal(finalID)
			if err != nil {
				return nil, err
			}

			if _, dup := seen[id]; dup {
				return nil, fmt.Errorf("%w: duplicate id %q", ErrStructure, id)
			}
			seen[id] = struct{}{}

			cell, err := parseCell(td, id, initial, final)
			if err != nil {
				return nil, err
			}
			cells = append(cells, cell)
		}
	}
	return cells, nil
}

func parseCell(td *goquery.Selection, id, initial, final string) (Cell, error) {
	field := func(name string) (string, error) {
		div := td.Find("div.table-" + name).First()
		if div.Length() == 0 {
			return "", fmt.Errorf("%w: cell %q has no %s", ErrStructure, id, name)
		}
		return strings.TrimSpace(div.Text()), nil
	}

	pinyin, err := field("pinyin")
	if err != nil {
		return Cell{}, err
	}
	if pinyin != id {
		return Cell{}, fmt.Errorf("%w: expected %q == %q", ErrStructure, id, pinyin)
	}

	cell := Cell{ID: id, Initial: initial, Final: final, Pinyin: pinyin}
	if cell.IPA, err = field("ipa"); err != nil {
		return Cell{}, err
	}
	if cell.Zhuyin, err = field("zhuyin"); err != nil {
		return Cell{}, err
	}
	if cell.WadeGiles, err = field("wade-giles"); err != nil {
		return Cell{}, err
	}

	href, ok := td.Find("div.table-link > a[href]").First().Attr("href")
	if !ok {
		return Cell{}, fmt.Errorf("%w: cell %q has no link", ErrStructure, id)
	}
	cell.URL = secureURL(href)

	return cell, nil
}

// secureURL upgrades an http link to https.
func secureURL(href string) string {
	if rest, ok := strings.CutPrefix(href, "http:"); ok {
		return "https:" + rest
	}
	return href
}
