// Package yale reads the Zhuyin to Yale romanization table.
package yale

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TableSelector locates the body of the romanization table.
const TableSelector = "div#main > table.ruler > tbody"

// ErrStructure reports a table that no longer has the expected layout.
var ErrStructure = errors.New("unexpected yale table structure")

// Overrides are spellings the table lacks or gets wrong for the chart.
// They take precedence over the parsed table.
var Overrides = map[string]string{
	"ㄥ":   "eng",
	"ㄛ":   "o",
	"ㄘㄟ":  "tsei",
	"ㄖㄨㄚ": "rwa",
	"ㄎㄟ":  "kei",
}

// Table maps Zhuyin spellings to Yale romanization.
type Table map[string]string

// Parse reads every row of the table as a (Zhuyin, Yale) pair and merges
// Overrides on top.
func Parse(doc *goquery.Document) (Table, error) {
	tbody := doc.Find(TableSelector).First()
	if tbody.Length() == 0 {
		return nil, fmt.Errorf("%w: %s not found", ErrStructure, TableSelector)
	}

	t := make(Table)
	var err error
	tbody.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		tds := tr.Find("td")
		if tds.Length() < 2 {
			err = fmt.Errorf("%w: row %d has %d cells", ErrStructure, i, tds.Length())
			return false
		}
		zhuyin := strings.TrimSpace(tds.Eq(0).Text())
		t[zhuyin] = strings.TrimSpace(tds.Eq(1).Text())
		return true
	})
	if err != nil {
		return nil, err
	}

	for zhuyin, y := range Overrides {
		t[zhuyin] = y
	}
	return t, nil
}

// Lookup returns the Yale spelling of zhuyin.
func (t Table) Lookup(zhuyin string) (string, bool) {
	y, ok := t[zhuyin]
	return y, ok
}
