package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

var (
	// ErrReservationNotFound は対象IDの予約が存在しないことを表します
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrSlotTaken は同じ日時に別の予約が既に存在することを表します
	ErrSlotTaken = errors.New("reservation slot already taken")
)

const (
	pqUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// isUniqueViolation は UNIQUE (fecha, hora) 制約違反かどうかを判定します
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return false
}
