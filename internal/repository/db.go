package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/jmoiron/sqlx"
)

type DB struct {
	*sqlx.DB
}

// BeginTx starts a new transaction
func (db *DB) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return db.DB.BeginTxx(ctx, nil)
}

// trace は fn を X-Ray のサブセグメント内で実行します
// 親セグメントがない場合はトレースせずにそのまま実行します
func (db *DB) trace(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, seg := xray.BeginSubsegment(ctx, name)
	if seg == nil {
		return fn(ctx)
	}

	if err := seg.AddMetadata("driver", db.DriverName()); err != nil {
		log.Printf("Failed to add driver metadata: %v", err)
	}

	err := fn(ctx)
	seg.Close(err)
	return err
}

// rollback はコミット済みでなければトランザクションをロールバックします
func rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Printf("rollback failed: %v", err)
	}
}
