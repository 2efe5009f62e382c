package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"pricecheck-service/internal/fileio"
	"pricecheck-service/internal/pricecheck/model"
)

// MasterRequiredColumns must be present in the SJ history to build the index.
var MasterRequiredColumns = []string{model.ColItemName, model.ColItemCode, model.ColItemUnit, model.ColCreatedOn}

// MasterIndex is the SJ history collapsed to one entry per ItemKey.
type MasterIndex struct {
	Entries []model.MasterEntry
	byName  map[string][]int
	names   []string
}

// BuildMasterIndex sorts the history newest first (missing timestamps last), groups it by
// (name, code, unit) and keeps the first price/category seen in each group plus the date range.
// Rows with an empty name, code or unit belong to no group.
func BuildMasterIndex(tbl *fileio.Table) (*MasterIndex, error) {
	if missing := tbl.MissingColumns(MasterRequiredColumns...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: SJ history lacks columns %s", model.ErrSchemaMismatch, strings.Join(missing, ", "))
	}

	type stamped struct {
		row fileio.Row
		ts  time.Time
		ok  bool
	}
	rows := make([]stamped, len(tbl.Rows))
	for i, r := range tbl.Rows {
		ts, ok := r.Time(model.ColCreatedOn)
		rows[i] = stamped{row: r, ts: ts, ok: ok}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ok != rows[j].ok {
			return rows[i].ok
		}
		return rows[i].ts.After(rows[j].ts)
	})

	groups := make(map[model.ItemKey]*model.MasterEntry)
	for _, s := range rows {
		name, okName := s.row.String(model.ColItemName)
		code, okCode := s.row.String(model.ColItemCode)
		unit, okUnit := s.row.String(model.ColItemUnit)
		if !okName || !okCode || !okUnit {
			continue
		}
		key := model.ItemKey{Name: name, Code: code, Unit: unit}
		e, ok := groups[key]
		if !ok {
			e = &model.MasterEntry{ItemKey: key}
			groups[key] = e
		}
		if e.Price == nil {
			if p, ok := s.row.Float(model.ColAvgPrice); ok {
				e.Price = &p
			}
		}
		if e.Category == nil {
			if c, ok := s.row.String(model.ColCategory); ok {
				e.Category = &c
			}
		}
		if s.ok {
			ts := s.ts
			if e.Latest == nil || ts.After(*e.Latest) {
				e.Latest = &ts
			}
			if e.Earliest == nil || ts.Before(*e.Earliest) {
				e.Earliest = &ts
			}
		}
	}

	idx := &MasterIndex{
		Entries: make([]model.MasterEntry, 0, len(groups)),
		byName:  make(map[string][]int, len(groups)),
	}
	for _, e := range groups {
		idx.Entries = append(idx.Entries, *e)
	}
	sort.Slice(idx.Entries, func(i, j int) bool {
		a, b := idx.Entries[i].ItemKey, idx.Entries[j].ItemKey
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Unit < b.Unit
	})
	for i, e := range idx.Entries {
		if _, seen := idx.byName[e.Name]; !seen {
			idx.names = append(idx.names, e.Name)
		}
		idx.byName[e.Name] = append(idx.byName[e.Name], i)
	}
	return idx, nil
}

// Names returns the distinct item names in index order.
func (m *MasterIndex) Names() []string { return m.names }

// Variants returns every entry carrying name.
func (m *MasterIndex) Variants(name string) []model.MasterEntry {
	ids := m.byName[name]
	out := make([]model.MasterEntry, 0, len(ids))
	for _, i := range ids {
		out = append(out, m.Entries[i])
	}
	return out
}

func (m *MasterIndex) Len() int { return len(m.Entries) }
