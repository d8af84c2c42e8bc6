package session

import (
	"strings"

	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/grid"
)

// CommitCellEdit parses locale-formatted numeric input, writes the 2-decimal
// rounded value into the addressed cell and recalculates. Unparseable input
// is coerced to zero, never surfaced as an error. The pre-edit tree is
// pushed onto the undo stack.
func (s *Session) CommitCellEdit(rowIdx, bucket int, raw string) error {
	err := s.do(func() error {
		m := s.model
		if rowIdx < 0 || rowIdx >= len(m.Rows) {
			return ErrRowNotFound
		}
		row := m.Rows[rowIdx]
		if bucket < 0 || bucket >= m.BucketCount() {
			return ErrBucketOutOfRange
		}
		if !row.Editable || row.IsRollupParent {
			return ErrRowNotEditable
		}
		if row.Label == domain.LabelBeginningBalance && bucket != 0 {
			return ErrBeginningBucketOnly
		}
		if s.cellLocked(row, bucket) {
			return ErrCellLocked
		}

		value, _ := domain.ParseAmount(raw)
		s.pushUndo()
		row.Values[bucket] = value
		grid.Recalculate(m)
		s.dirty = true
		return nil
	})
	if err != nil {
		return err
	}
	s.notify(EventEdited)
	return nil
}

// CommitLabelEdit renames a category row. Whitespace is trimmed; an empty
// or unchanged label is a no-op that touches neither history nor the dirty
// flag. Structural rows keep their canonical labels.
func (s *Session) CommitLabelEdit(rowIdx int, newLabel string) error {
	changed := false
	err := s.do(func() error {
		m := s.model
		if rowIdx < 0 || rowIdx >= len(m.Rows) {
			return ErrRowNotFound
		}
		row := m.Rows[rowIdx]
		if row.Kind != domain.KindCategory {
			return ErrRowNotEditable
		}

		label := strings.TrimSpace(newLabel)
		if label == "" || label == row.Label {
			return nil
		}
		s.pushUndo()
		row.Label = label
		s.dirty = true
		changed = true
		return nil
	})
	if err != nil {
		return err
	}
	if changed {
		s.notify(EventEdited)
	}
	return nil
}

// cellLocked applies the forecast lock policy: while forecast buckets
// exist, every actual bucket is locked against direct edits except the
// beginning-balance cell at bucket 0, which seeds the whole chain.
func (s *Session) cellLocked(row *domain.Row, bucket int) bool {
	m := s.model
	if !m.HasForecast() || bucket >= m.ActualBuckets {
		return false
	}
	if row.Label == domain.LabelBeginningBalance && bucket == 0 {
		return false
	}
	return true
}

// CellLocked reports whether the addressed cell rejects edits under the
// current forecast state. Out-of-range addresses report locked.
func (s *Session) CellLocked(rowIdx, bucket int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rowIdx < 0 || rowIdx >= len(s.model.Rows) {
		return true
	}
	if bucket < 0 || bucket >= s.model.BucketCount() {
		return true
	}
	return s.cellLocked(s.model.Rows[rowIdx], bucket)
}
