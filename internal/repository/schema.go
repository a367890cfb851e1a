package repository

import (
	"context"
	"fmt"

	"github.com/uma-arai/sbcntr-reserva/internal/common/database"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS reserva (
	id SERIAL PRIMARY KEY,
	nombre VARCHAR(50) NOT NULL,
	apellido VARCHAR(50) NOT NULL,
	fecha DATE NOT NULL,
	hora TIME NOT NULL,
	CONSTRAINT reserva_fecha_hora_key UNIQUE (fecha, hora)
)`

const mysqlSchema = `CREATE TABLE IF NOT EXISTS reserva (
	id INT AUTO_INCREMENT PRIMARY KEY,
	nombre VARCHAR(50) NOT NULL,
	apellido VARCHAR(50) NOT NULL,
	fecha DATE NOT NULL,
	hora TIME NOT NULL,
	CONSTRAINT reserva_fecha_hora_key UNIQUE (fecha, hora)
) DEFAULT CHARSET=utf8mb4`

// EnsureSchema は reserva テーブルが無ければ作成します
func (r *ReservationRepositoryImpl) EnsureSchema(ctx context.Context) error {
	ddl := postgresSchema
	if r.db.DriverName() == database.DriverMySQL {
		ddl = mysqlSchema
	}

	return r.db.trace(ctx, "ReservationRepository.EnsureSchema", func(ctx context.Context) error {
		if _, err := r.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create reserva table: %w", err)
		}
		return nil
	})
}
