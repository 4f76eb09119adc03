package form

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/yakoovad/hackathon-registration/internal/model"
)

var (
	ErrMembersCapacity = errors.New("maximum 4 additional members allowed")
	ErrRowNotFound     = errors.New("member row not found")
)

const capacityMessage = "Maximum 4 additional members allowed."

type MemberRow struct {
	mu     sync.RWMutex
	number int
	name   string
	email  string
}

// Number is the 1-based display position of the row.
func (r *MemberRow) Number() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.number
}

func (r *MemberRow) Placeholder() string {
	return fmt.Sprintf("Member %d full name", r.Number())
}

func (r *MemberRow) SetName(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name = name
}

func (r *MemberRow) SetEmail(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.email = email
}

func (r *MemberRow) values() (string, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.name, r.email
}

// MemberRows owns the optional team member rows. The lead is not a row.
type MemberRows struct {
	mu       sync.Mutex
	rows     []*MemberRow
	capacity int
}

func NewMemberRows() *MemberRows {
	return &MemberRows{capacity: model.MaxMembers}
}

// Add appends an empty row. At capacity it returns ErrMembersCapacity and
// leaves the existing rows untouched.
func (m *MemberRows) Add() (*MemberRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.rows) >= m.capacity {
		return nil, ErrMembersCapacity
	}

	row := &MemberRow{number: len(m.rows) + 1}
	m.rows = append(m.rows, row)

	return row, nil
}

// Remove deletes row and renumbers the remaining rows from 1.
func (m *MemberRows) Remove(row *MemberRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.IndexFunc(m.rows, func(r *MemberRow) bool { return r == row })
	if idx < 0 {
		return ErrRowNotFound
	}

	m.rows = slices.Delete(m.rows, idx, idx+1)
	for i, r := range m.rows {
		r.mu.Lock()
		r.number = i + 1
		r.mu.Unlock()
	}

	return nil
}

func (m *MemberRows) CanAdd() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows) < m.capacity
}

func (m *MemberRows) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// Rows returns a snapshot of the current rows in display order.
func (m *MemberRows) Rows() []*MemberRow {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.rows)
}

// Collect yields the members worth submitting: rows with a non-blank name,
// trimmed, e-mail lowercased. Each iteration reads the rows as they are then.
func (m *MemberRows) Collect() iter.Seq[*model.Member] {
	return func(yield func(*model.Member) bool) {
		for _, row := range m.Rows() {
			name, email := row.values()
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			member := &model.Member{
				Name:  name,
				Email: strings.ToLower(strings.TrimSpace(email)),
			}
			if !yield(member) {
				return
			}
		}
	}
}
