// Package refdata loads the flat-file reference tables used during ingestion:
// jurisdiction IDs, alternate-name standardization, alderperson cities,
// hand-split unusual names and office term lengths.
//
// Every loader returns an explicit read-only value; nothing is global.
package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// NameKey folds case and whitespace so lookups tolerate spacing differences.
func NameKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NameParts is a person name split into first, middle and last.
type NameParts struct {
	First  string
	Middle string
	Last   string
}

// StandardNames maps alternate spellings to a canonical name.
type StandardNames map[string]string

// Lookup returns the canonical form of name, if one is listed.
func (s StandardNames) Lookup(name string) (string, bool) {
	v, ok := s[NameKey(name)]
	return v, ok
}

// Standardize returns the canonical form of name, or name itself.
func (s StandardNames) Standardize(name string) string {
	if v, ok := s.Lookup(name); ok {
		return v
	}
	return name
}

// Alders maps an alderperson's name to the city they serve.
type Alders map[string]string

// Lookup returns the city for name.
func (a Alders) Lookup(name string) (string, bool) {
	v, ok := a[NameKey(name)]
	return v, ok
}

// SpecialNames holds full names that the heuristic splitter gets wrong.
type SpecialNames map[string]NameParts

// Lookup returns the listed parts for full.
func (s SpecialNames) Lookup(full string) (NameParts, bool) {
	v, ok := s[NameKey(full)]
	return v, ok
}

// JurisdictionRef is one row of the jurisdictions table.
type JurisdictionRef struct {
	Name string
	ID   int
}

// Terms maps "jurisdiction/office" to a term length in years.
type Terms map[string]int

// TermKey builds the Terms key for a jurisdiction and office.
func TermKey(jurisdiction, office string) string {
	return NameKey(jurisdiction) + "/" + NameKey(office)
}

// Lookup returns the term length for an office in a jurisdiction.
func (t Terms) Lookup(jurisdiction, office string) (int, bool) {
	v, ok := t[TermKey(jurisdiction, office)]
	return v, ok
}

// LoadStandardNames reads an "Alt Name","Standardized Name" table.
// An empty path yields an empty table. Rows without named columns fall back
// to the first two columns.
func LoadStandardNames(path string) (StandardNames, error) {
	out := StandardNames{}
	if path == "" {
		return out, nil
	}
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		alt, std := r.get("alt name"), r.get("standardized name")
		if alt == "" || std == "" {
			alt, std = r.col(0), r.col(1)
		}
		if alt == "" || std == "" {
			continue
		}
		out[NameKey(alt)] = std
	}
	return out, nil
}

// LoadAlders reads a "Name","City" table.
func LoadAlders(path string) (Alders, error) {
	out := Alders{}
	if path == "" {
		return out, nil
	}
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		name, city := r.get("name"), r.get("city")
		if name == "" || city == "" {
			continue
		}
		out[NameKey(name)] = city
	}
	return out, nil
}

// LoadSpecialNames reads a "Full","First","Middle","Last" table.
func LoadSpecialNames(path string) (SpecialNames, error) {
	out := SpecialNames{}
	if path == "" {
		return out, nil
	}
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		full := r.get("full")
		if full == "" {
			continue
		}
		out[NameKey(full)] = NameParts{First: r.get("first"), Middle: r.get("middle"), Last: r.get("last")}
	}
	return out, nil
}

// LoadJurisdictions reads an "Organization Name","ID" table.
func LoadJurisdictions(path string) ([]JurisdictionRef, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	out := make([]JurisdictionRef, 0, len(rows))
	for _, r := range rows {
		name := r.get("organization name")
		if name == "" {
			continue
		}
		id, err := strconv.Atoi(r.get("id"))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad ID %q: %w", path, r.line, r.get("id"), err)
		}
		out = append(out, JurisdictionRef{Name: name, ID: id})
	}
	return out, nil
}

// TermRow is one row of the election terms table.
type TermRow struct {
	Jurisdiction string
	Office       string
	Years        int
}

// LoadTermRows reads a "Jurisdiction","Office","Term (years)" table.
func LoadTermRows(path string) ([]TermRow, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	out := make([]TermRow, 0, len(rows))
	for _, r := range rows {
		jur, office := r.get("jurisdiction"), r.get("office")
		if office == "" {
			continue
		}
		years, err := strconv.Atoi(r.get("term (years)"))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad term %q: %w", path, r.line, r.get("term (years)"), err)
		}
		out = append(out, TermRow{Jurisdiction: jur, Office: office, Years: years})
	}
	return out, nil
}

// LoadTerms reads the election terms table into a lookup.
func LoadTerms(path string) (Terms, error) {
	rows, err := LoadTermRows(path)
	if err != nil {
		return nil, err
	}
	return TermsFrom(rows), nil
}

// TermsFrom indexes term rows by jurisdiction and office.
func TermsFrom(rows []TermRow) Terms {
	out := Terms{}
	for _, r := range rows {
		out[TermKey(r.Jurisdiction, r.Office)] = r.Years
	}
	return out
}

type tableRow struct {
	line   int
	fields map[string]string
	values []string
}

func (r tableRow) get(col string) string { return strings.TrimSpace(r.fields[col]) }

func (r tableRow) col(i int) string {
	if i < len(r.values) {
		return strings.TrimSpace(r.values[i])
	}
	return ""
}

// readTable reads a headed CSV file. Header names are matched
// case-insensitively and a UTF-8 byte order mark is ignored. An empty path
// is an empty table.
func readTable(path string) ([]tableRow, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readTableFrom(f, path)
}

func readTableFrom(src io.Reader, name string) ([]tableRow, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	var out []tableRow
	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, line, err)
		}
		row := tableRow{line: line, fields: make(map[string]string, len(header)), values: rec}
		for i, h := range header {
			if i < len(rec) {
				row.fields[h] = rec[i]
			}
		}
		out = append(out, row)
	}
	return out, nil
}
