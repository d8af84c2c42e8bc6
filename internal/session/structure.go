package session

import (
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/grid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddLineItem inserts a new zero-valued rollup-parent row immediately before
// the section's total row and returns it for label entry. Returns nil when
// the section has no total row to anchor on.
func (s *Session) AddLineItem(section domain.Section) *domain.Row {
	var added *domain.Row
	s.do(func() error {
		m := s.model
		anchor := sectionTotalIndex(m, section)
		if anchor < 0 {
			return nil
		}

		s.pushUndo()
		added = &domain.Row{
			ID:             uuid.New().String(),
			Kind:           domain.KindCategory,
			Section:        section,
			IsRollupParent: true,
			Values:         make([]decimal.Decimal, m.BucketCount()),
		}
		m.Rows = insertRow(m.Rows, anchor, added)
		grid.Recalculate(m)
		s.dirty = true
		return nil
	})
	if added != nil {
		s.notify(EventStructureChanged)
	}
	return added
}

// AddSubItem inserts a new editable child row immediately after the
// parent's existing children. Defensive no-op (returns nil) when the parent
// is missing or not a rollup parent.
func (s *Session) AddSubItem(parentID string) *domain.Row {
	var added *domain.Row
	s.do(func() error {
		m := s.model
		parent := m.RowByID(parentID)
		if parent == nil || !parent.IsRollupParent {
			return nil
		}

		insertAt := m.IndexOf(parent) + 1
		for i := insertAt; i < len(m.Rows); i++ {
			if m.Rows[i].ParentID != parentID {
				break
			}
			insertAt = i + 1
		}

		s.pushUndo()
		added = &domain.Row{
			ID:       uuid.New().String(),
			Kind:     domain.KindCategory,
			Section:  parent.Section,
			Editable: true,
			ParentID: parentID,
			Values:   make([]decimal.Decimal, m.BucketCount()),
		}
		m.Rows = insertRow(m.Rows, insertAt, added)
		grid.Recalculate(m)
		s.dirty = true
		return nil
	})
	if added != nil {
		s.notify(EventStructureChanged)
	}
	return added
}

// DeleteLineItem removes a row carrying a user- or cluster-assigned ID,
// cascading to all of its children. Fixed structural rows and unnamed
// placeholders carry no ID and are silently left alone.
func (s *Session) DeleteLineItem(rowIdx int) {
	deleted := false
	s.do(func() error {
		m := s.model
		if rowIdx < 0 || rowIdx >= len(m.Rows) {
			return nil
		}
		row := m.Rows[rowIdx]
		if row.ID == "" {
			return nil
		}

		s.pushUndo()
		drop := map[string]bool{row.ID: true}
		// Children may nest; sweep until the cascade set is closed.
		for grew := true; grew; {
			grew = false
			for _, r := range m.Rows {
				if r.ID != "" && !drop[r.ID] && r.ParentID != "" && drop[r.ParentID] {
					drop[r.ID] = true
					grew = true
				}
			}
		}

		kept := m.Rows[:0]
		for _, r := range m.Rows {
			if r == row || (r.ID != "" && drop[r.ID]) {
				continue
			}
			kept = append(kept, r)
		}
		m.Rows = kept
		grid.Recalculate(m)
		s.dirty = true
		deleted = true
		return nil
	})
	if deleted {
		s.notify(EventStructureChanged)
	}
}

func sectionTotalIndex(m *domain.Model, section domain.Section) int {
	for i, r := range m.Rows {
		if r.Kind == domain.KindSectionTotal && r.Section == section {
			return i
		}
	}
	return -1
}

func insertRow(rows []*domain.Row, at int, row *domain.Row) []*domain.Row {
	rows = append(rows, nil)
	copy(rows[at+1:], rows[at:])
	rows[at] = row
	return rows
}
