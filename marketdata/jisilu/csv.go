package jisilu

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReadTable loads one export file. The exports are written with a UTF-8 BOM
// and occasionally ragged rows, both of which are tolerated here.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadTable: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ReadTable %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ReadTable %s: empty file", path)
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header[strings.TrimSpace(name)] = i
	}
	return &Table{header: header, rows: records[1:]}, nil
}

// FileName is the export naming convention, jisilu_cb_<kind>_<date>.csv.
func FileName(kind Kind, date string) string {
	return fmt.Sprintf("jisilu_cb_%s_%s.csv", kind, date)
}

// LatestFile returns the newest export of the given kind under dir, by
// modification time.
func LatestFile(dir string, kind Kind) (string, error) {
	pattern := filepath.Join(dir, fmt.Sprintf("jisilu_cb_%s_*.csv", kind))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("LatestFile: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("LatestFile: no files match %s", pattern)
	}

	sort.Slice(matches, func(i, j int) bool {
		fi, erri := os.Stat(matches[i])
		fj, errj := os.Stat(matches[j])
		if erri != nil || errj != nil {
			return matches[i] < matches[j]
		}
		return fi.ModTime().Before(fj.ModTime())
	})
	return matches[len(matches)-1], nil
}

// Load reads the four tables for an explicit export date.
func Load(dir, date string) (*Dataset, error) {
	ds := &Dataset{}
	for kind, dst := range map[Kind]**Table{
		KindData:   &ds.Data,
		KindRedeem: &ds.Redeem,
		KindAdjust: &ds.Adjust,
		KindPut:    &ds.Put,
	} {
		tbl, err := ReadTable(filepath.Join(dir, FileName(kind, date)))
		if err != nil {
			return nil, fmt.Errorf("Load %s: %w", kind, err)
		}
		*dst = tbl
	}
	return ds, nil
}

// LoadLatest reads the four newest tables under dir, independently per kind.
func LoadLatest(dir string) (*Dataset, error) {
	ds := &Dataset{}
	for kind, dst := range map[Kind]**Table{
		KindData:   &ds.Data,
		KindRedeem: &ds.Redeem,
		KindAdjust: &ds.Adjust,
		KindPut:    &ds.Put,
	} {
		path, err := LatestFile(dir, kind)
		if err != nil {
			return nil, fmt.Errorf("LoadLatest %s: %w", kind, err)
		}
		tbl, err := ReadTable(path)
		if err != nil {
			return nil, fmt.Errorf("LoadLatest %s: %w", kind, err)
		}
		*dst = tbl
	}
	return ds, nil
}
