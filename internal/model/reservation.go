package model

import "fmt"

// Reservation は予約レコードを表します
// reserva テーブルの1行と対応しています
type Reservation struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"nombre" json:"nombre"`
	LastName  string    `db:"apellido" json:"apellido"`
	Date      Date      `db:"fecha" json:"fecha"`
	Time      TimeOfDay `db:"hora" json:"hora"`
}

// NewReservation は未登録の予約を作成します
// IDはINSERT成功後にストレージが採番した値で上書きされます
func NewReservation(firstName, lastName string, date Date, at TimeOfDay) *Reservation {
	return &Reservation{
		FirstName: firstName,
		LastName:  lastName,
		Date:      date,
		Time:      at,
	}
}

// NewReservationWithID は検索・削除用にIDだけを持つ予約を作成します
func NewReservationWithID(id int64) *Reservation {
	return &Reservation{ID: id}
}

// Slot は予約の日時枠を返します
func (r Reservation) Slot() Slot {
	return Slot{Date: r.Date, Time: r.Time}
}

func (r Reservation) String() string {
	return fmt.Sprintf("Reserva [id=%d, nombreReserva=%s, apellidoReserva=%s, fechaReserva=%s, horaReserva=%s]",
		r.ID, r.FirstName, r.LastName, r.Date, r.Time)
}

// Line はカンマ区切りの1行表現を返します
func (r Reservation) Line() string {
	return fmt.Sprintf("%d,%s,%s,%s,%s", r.ID, r.FirstName, r.LastName, r.Date, r.Time)
}

// Slot は日付と時刻の組です。全予約の中で一意でなければなりません
type Slot struct {
	Date Date
	Time TimeOfDay
}

func (s Slot) String() string {
	return s.Date.String() + " " + s.Time.String()
}
