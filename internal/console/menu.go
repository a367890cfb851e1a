// Package console は予約管理のメニューループを提供します
package console

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/uma-arai/sbcntr-reserva/internal/common/terminal"
	"github.com/uma-arai/sbcntr-reserva/internal/model"
)

const (
	OptionInvalid = iota
	OptionList
	OptionFind
	OptionAdd
	OptionUpdate
	OptionDelete
	OptionExit
)

const menuText = `
*** Sistema de Reservas ***
1. Listar reservas
2. Buscar reserva
3. Agregar reserva
4. Modificar reserva
5. Eliminar reserva
6. Salir`

// ReservationService はメニューから呼び出す予約操作です
type ReservationService interface {
	ShowReservations(ctx context.Context) bool
	FindReservation(ctx context.Context, reservation *model.Reservation) bool
	InsertReservation(ctx context.Context, reservation *model.Reservation) bool
	ModifyReservation(ctx context.Context, reservation *model.Reservation) bool
	RemoveReservation(ctx context.Context, reservation *model.Reservation) bool

	ValidateID(reservation *model.Reservation) error
	ValidateFields(reservation *model.Reservation) error
}

// Menu は選択待ちの状態を1つだけ持つメニューループです
type Menu struct {
	term *terminal.Terminal
	svc  ReservationService
}

func NewMenu(term *terminal.Terminal, svc ReservationService) *Menu {
	return &Menu{term: term, svc: svc}
}

// ParseOption は入力行をメニュー番号に変換します。数値でない入力は OptionInvalid です
func ParseOption(line string) int {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return OptionInvalid
	}
	return n
}

// Run は終了が選択されるか入力が終端に達するまでメニューを繰り返します
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.term.Println(menuText)
		line, err := m.term.ReadLine("Elija una opción: ")
		if err != nil {
			return ignoreEOF(err)
		}

		option := ParseOption(line)
		if option == OptionExit {
			m.term.Println("Hasta pronto.")
			return nil
		}

		if err := m.dispatch(ctx, option); err != nil {
			return ignoreEOF(err)
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, option int) error {
	switch option {
	case OptionList:
		m.svc.ShowReservations(ctx)
		return nil
	case OptionFind:
		return m.find(ctx)
	case OptionAdd:
		return m.add(ctx)
	case OptionUpdate:
		return m.update(ctx)
	case OptionDelete:
		return m.remove(ctx)
	default:
		m.term.Println("Opción inválida. Intente nuevamente.")
		return nil
	}
}

func (m *Menu) find(ctx context.Context) error {
	reservation, ok, err := m.lookup(ctx)
	if err != nil || !ok {
		return err
	}
	m.term.Println(reservation)
	return nil
}

func (m *Menu) add(ctx context.Context) error {
	reservation := &model.Reservation{}
	if err := m.svc.ValidateFields(reservation); err != nil {
		return err
	}

	if m.svc.InsertReservation(ctx, reservation) {
		m.term.Printf("Reserva agregada con ID %d.\n", reservation.ID)
		log.Printf("Reservation %d created for %s", reservation.ID, reservation.Slot())
	}
	return nil
}

func (m *Menu) update(ctx context.Context) error {
	reservation, ok, err := m.lookup(ctx)
	if err != nil || !ok {
		return err
	}
	m.term.Println("Reserva actual:", reservation)

	if err := m.svc.ValidateFields(reservation); err != nil {
		return err
	}

	if m.svc.ModifyReservation(ctx, reservation) {
		m.term.Println("Reserva modificada:", reservation)
	}
	return nil
}

func (m *Menu) remove(ctx context.Context) error {
	reservation, ok, err := m.lookup(ctx)
	if err != nil || !ok {
		return err
	}
	m.term.Println(reservation)

	answer, err := m.term.ReadLine("¿Está seguro de que desea eliminar esta reserva? (S/N): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "S") {
		m.term.Println("Eliminación cancelada.")
		return nil
	}

	if m.svc.RemoveReservation(ctx, reservation) {
		m.term.Println("Reserva eliminada.")
	} else {
		m.term.Println("No se pudo eliminar la reserva.")
	}
	return nil
}

// lookup はIDを入力させて予約を検索します。見つからない場合はメッセージを表示します
func (m *Menu) lookup(ctx context.Context) (*model.Reservation, bool, error) {
	reservation := &model.Reservation{}
	if err := m.svc.ValidateID(reservation); err != nil {
		return nil, false, err
	}

	id := reservation.ID
	if !m.svc.FindReservation(ctx, reservation) {
		m.term.Printf("No se encontró la reserva con ID %d.\n", id)
		return nil, false, nil
	}
	return reservation, true, nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
