// Package repositorytest はテスト用の ReservationRepository 実装を提供します
package repositorytest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/uma-arai/sbcntr-reserva/internal/model"
	"github.com/uma-arai/sbcntr-reserva/internal/repository"
)

// MemoryRepository はメモリ上で予約を保持する ReservationRepository です
// 日時の一意制約とID昇順の一覧は本物のテーブルと同じように振る舞います
type MemoryRepository struct {
	mu     sync.Mutex
	rows   map[int64]model.Reservation
	nextID int64

	// Err が設定されている場合、全ての操作がこのエラーを返します
	Err error
}

var _ repository.ReservationRepository = (*MemoryRepository)(nil)

func NewMemoryRepository(seed ...model.Reservation) *MemoryRepository {
	m := &MemoryRepository{rows: map[int64]model.Reservation{}, nextID: 1}
	for _, r := range seed {
		if r.ID == 0 {
			r.ID = m.nextID
		}
		m.rows[r.ID] = r
		if r.ID >= m.nextID {
			m.nextID = r.ID + 1
		}
	}
	return m
}

func (m *MemoryRepository) List(_ context.Context) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.sorted(func(model.Reservation) bool { return true }), nil
}

func (m *MemoryRepository) FindByID(_ context.Context, reservation *model.Reservation) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	row, ok := m.rows[reservation.ID]
	if !ok {
		return false, nil
	}
	*reservation = row
	return true, nil
}

func (m *MemoryRepository) Create(_ context.Context, reservation *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.slotTaken(reservation.Slot(), 0) {
		return fmt.Errorf("%s: %w", reservation.Slot(), repository.ErrSlotTaken)
	}
	row := *reservation
	row.ID = m.nextID
	m.nextID++
	m.rows[row.ID] = row
	reservation.ID = row.ID
	return nil
}

func (m *MemoryRepository) Update(_ context.Context, reservation *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.rows[reservation.ID]; !ok {
		return fmt.Errorf("reservation %d: %w", reservation.ID, repository.ErrReservationNotFound)
	}
	if m.slotTaken(reservation.Slot(), reservation.ID) {
		return fmt.Errorf("%s: %w", reservation.Slot(), repository.ErrSlotTaken)
	}
	m.rows[reservation.ID] = *reservation
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, reservation *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.rows[reservation.ID]; !ok {
		return fmt.Errorf("reservation %d: %w", reservation.ID, repository.ErrReservationNotFound)
	}
	delete(m.rows, reservation.ID)
	return nil
}

func (m *MemoryRepository) DeleteBefore(_ context.Context, date model.Date) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	purged := m.sorted(func(r model.Reservation) bool { return r.Date.Before(date) })
	for _, r := range purged {
		delete(m.rows, r.ID)
	}
	return purged, nil
}

// Len は保持している予約の件数を返します
func (m *MemoryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *MemoryRepository) slotTaken(slot model.Slot, exceptID int64) bool {
	for id, r := range m.rows {
		if id != exceptID && r.Slot() == slot {
			return true
		}
	}
	return false
}

func (m *MemoryRepository) sorted(keep func(model.Reservation) bool) []model.Reservation {
	out := []model.Reservation{}
	for _, r := range m.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
