package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/uma-arai/sbcntr-reserva/internal/common/database"
	"github.com/uma-arai/sbcntr-reserva/internal/model"
)

const (
	listReservationsQuery  = `SELECT id, nombre, apellido, fecha, hora FROM reserva ORDER BY id`
	findReservationQuery   = `SELECT id, nombre, apellido, fecha, hora FROM reserva WHERE id = ?`
	countSlotQuery         = `SELECT COUNT(*) FROM reserva WHERE fecha = ? AND hora = ?`
	countByIDQuery         = `SELECT COUNT(*) FROM reserva WHERE id = ?`
	countOtherSlotQuery    = `SELECT COUNT(*) FROM reserva WHERE fecha = ? AND hora = ? AND id <> ?`
	insertReservationQuery = `INSERT INTO reserva (nombre, apellido, fecha, hora) VALUES (?, ?, ?, ?)`
	updateReservationQuery = `UPDATE reserva SET nombre = ?, apellido = ?, fecha = ?, hora = ? WHERE id = ?`
	deleteReservationQuery = `DELETE FROM reserva WHERE id = ?`
	listBeforeQuery        = `SELECT id, nombre, apellido, fecha, hora FROM reserva WHERE fecha < ? ORDER BY id`
	deleteBeforeQuery      = `DELETE FROM reserva WHERE fecha < ?`
)

// ReservationRepository は予約の永続化を担当するインターフェースです
type ReservationRepository interface {
	List(ctx context.Context) ([]model.Reservation, error)
	FindByID(ctx context.Context, reservation *model.Reservation) (bool, error)
	Create(ctx context.Context, reservation *model.Reservation) error
	Update(ctx context.Context, reservation *model.Reservation) error
	Delete(ctx context.Context, reservation *model.Reservation) error
	DeleteBefore(ctx context.Context, date model.Date) ([]model.Reservation, error)
}

// ReservationRepositoryImpl は reserva テーブルに対する ReservationRepository の実装です
type ReservationRepositoryImpl struct {
	db *DB
}

func NewReservationRepository(db *DB) *ReservationRepositoryImpl {
	return &ReservationRepositoryImpl{db: db}
}

// List は全ての予約をID昇順で取得します
func (r *ReservationRepositoryImpl) List(ctx context.Context) ([]model.Reservation, error) {
	reservations := []model.Reservation{}
	err := r.db.trace(ctx, "ReservationRepository.List", func(ctx context.Context) error {
		if err := r.db.SelectContext(ctx, &reservations, listReservationsQuery); err != nil {
			return fmt.Errorf("failed to list reservations: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindByID は reservation.ID の予約を検索し、見つかった場合は reservation 自体を書き換えます
// 見つからない場合はエラーではなく false を返します
func (r *ReservationRepositoryImpl) FindByID(ctx context.Context, reservation *model.Reservation) (bool, error) {
	found := false
	err := r.db.trace(ctx, "ReservationRepository.FindByID", func(ctx context.Context) error {
		var row model.Reservation
		err := r.db.GetContext(ctx, &row, r.db.Rebind(findReservationQuery), reservation.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to find reservation %d: %w", reservation.ID, err)
		}
		*reservation = row
		found = true
		return nil
	})
	return found, err
}

// Create は予約を登録し、採番されたIDを reservation に書き戻します
// 同じ日時の予約が既にある場合は ErrSlotTaken を返します
func (r *ReservationRepositoryImpl) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.trace(ctx, "ReservationRepository.Create", func(ctx context.Context) error {
		tx, err := r.db.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer rollback(tx)

		taken, err := r.rowsExist(ctx, tx, countSlotQuery, reservation.Date, reservation.Time)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%s: %w", reservation.Slot(), ErrSlotTaken)
		}

		id, err := r.insert(ctx, tx, reservation)
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", reservation.Slot(), ErrSlotTaken)
		}
		if err != nil {
			return fmt.Errorf("failed to insert reservation: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		reservation.ID = id
		return nil
	})
}

// insert は PostgreSQL では RETURNING 句で、MySQL では LastInsertId で採番値を取得します
func (r *ReservationRepositoryImpl) insert(ctx context.Context, tx *sqlx.Tx, reservation *model.Reservation) (int64, error) {
	args := []any{reservation.FirstName, reservation.LastName, reservation.Date, reservation.Time}

	if r.db.DriverName() == database.DriverPostgres {
		var id int64
		err := tx.QueryRowxContext(ctx, tx.Rebind(insertReservationQuery+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	result, err := tx.ExecContext(ctx, tx.Rebind(insertReservationQuery), args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Update は reservation.ID の予約の4項目を上書きします
// 予約が存在しない場合は ErrReservationNotFound、
// 別の予約が同じ日時を使っている場合は ErrSlotTaken を返します
func (r *ReservationRepositoryImpl) Update(ctx context.Context, reservation *model.Reservation) error {
	return r.db.trace(ctx, "ReservationRepository.Update", func(ctx context.Context) error {
		tx, err := r.db.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer rollback(tx)

		exists, err := r.rowsExist(ctx, tx, countByIDQuery, reservation.ID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("reservation %d: %w", reservation.ID, ErrReservationNotFound)
		}

		taken, err := r.rowsExist(ctx, tx, countOtherSlotQuery, reservation.Date, reservation.Time, reservation.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%s: %w", reservation.Slot(), ErrSlotTaken)
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(updateReservationQuery),
			reservation.FirstName,
			reservation.LastName,
			reservation.Date,
			reservation.Time,
			reservation.ID,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", reservation.Slot(), ErrSlotTaken)
		}
		if err != nil {
			return fmt.Errorf("failed to update reservation %d: %w", reservation.ID, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
}

// Delete は reservation.ID の予約を物理削除します
// ちょうど1行削除できた場合のみ成功です
func (r *ReservationRepositoryImpl) Delete(ctx context.Context, reservation *model.Reservation) error {
	return r.db.trace(ctx, "ReservationRepository.Delete", func(ctx context.Context) error {
		result, err := r.db.ExecContext(ctx, r.db.Rebind(deleteReservationQuery), reservation.ID)
		if err != nil {
			return fmt.Errorf("failed to delete reservation %d: %w", reservation.ID, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected != 1 {
			return fmt.Errorf("reservation %d: %w", reservation.ID, ErrReservationNotFound)
		}
		return nil
	})
}

// DeleteBefore は date より前の日付の予約を削除し、削除した予約を返します
func (r *ReservationRepositoryImpl) DeleteBefore(ctx context.Context, date model.Date) ([]model.Reservation, error) {
	purged := []model.Reservation{}
	err := r.db.trace(ctx, "ReservationRepository.DeleteBefore", func(ctx context.Context) error {
		tx, err := r.db.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer rollback(tx)

		if err := tx.SelectContext(ctx, &purged, tx.Rebind(listBeforeQuery), date); err != nil {
			return fmt.Errorf("failed to list reservations before %s: %w", date, err)
		}
		if len(purged) == 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(deleteBeforeQuery), date); err != nil {
			return fmt.Errorf("failed to delete reservations before %s: %w", date, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purged, nil
}

// rowsExist は COUNT(*) を返すクエリを実行し、1件以上あるかを返します
func (r *ReservationRepositoryImpl) rowsExist(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (bool, error) {
	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(query), args...); err != nil {
		return false, fmt.Errorf("failed to run pre-check: %w", err)
	}
	return count > 0, nil
}
