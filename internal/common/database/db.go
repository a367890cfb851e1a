package database

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type DB struct {
	*sqlx.DB
}

type Config struct {
	Driver   string
	Host     string
	Port     int
	UserName string
	Password string
	DBName   string
	SSLMode  string
}

// DSN はドライバに応じた接続文字列を返します
func (c Config) DSN() string {
	if c.Driver == DriverMySQL {
		mc := mysql.NewConfig()
		mc.User = c.UserName
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		mc.DBName = c.DBName
		// DATE を time.Time として受け取る
		mc.ParseTime = true
		mc.Loc = time.UTC
		return mc.FormatDSN()
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.UserName,
		c.Password,
		c.DBName,
		c.sslMode(),
	)
}

// localhostのDBの場合はSSLを無効化
func (c Config) sslMode() string {
	if c.SSLMode != "" {
		return c.SSLMode
	}
	if c.Host == "localhost" || c.Host == "127.0.0.1" {
		return "disable"
	}
	return "require" // 本番環境ではSSLを有効にする
}

func NewDB(cfg Config) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverPostgres
		cfg.Driver = driver
	}

	// X-Ray対応のSQLコンテキストを作成
	db, err := xray.SQLContext(driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database with X-Ray: %w", err)
	}

	// コネクションプールの設定
	// 操作ごとにプールから接続を借りて返却する
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 接続テスト
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{sqlx.NewDb(db, driver)}, nil
}
