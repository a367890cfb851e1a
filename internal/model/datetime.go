package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	// DisplayDateLayout はコンソールで入力する日付の形式 (dd/MM/yyyy) です
	DisplayDateLayout = "02/01/2006"
	isoDateLayout     = "2006-01-02"
)

var timeLayouts = []string{"15:04", "15:04:05"}

// Date はタイムゾーンを持たない暦日です
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf は時刻のロケーションにおける暦日を返します
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate は dd/MM/yyyy 形式の文字列を日付に変換します
// 31/02/2025 のような存在しない日付はエラーになります
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DisplayDateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) asTime() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Before(other Date) bool {
	return d.asTime().Before(other.asTime())
}

func (d Date) After(other Date) bool {
	return d.asTime().After(other.asTime())
}

// Display はコンソール表示用の dd/MM/yyyy 形式を返します
func (d Date) Display() string {
	return d.asTime().Format(DisplayDateLayout)
}

func (d Date) String() string {
	return d.asTime().Format(isoDateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	t, err := time.Parse(isoDateLayout, string(b))
	if err != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}

// Scan は sql.Scanner を実装します
// lib/pq と parseTime=true の mysql は time.Time を、それ以外は []byte を返します
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.UnmarshalText(v)
	case string:
		return d.UnmarshalText([]byte(v))
	case nil:
		return fmt.Errorf("cannot scan NULL into model.Date")
	default:
		return fmt.Errorf("unexpected type for model.Date: %T", v)
	}
}

// Value は driver.Valuer を実装します
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// TimeOfDay は日付を持たない時刻です
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// ParseTimeOfDay は 24時間表記の HH:mm または HH:mm:ss を時刻に変換します
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
		lastErr = err
	}
	return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, lastErr)
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds() < other.seconds()
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.seconds() > other.seconds()
}

// String は秒が0のとき HH:mm を、それ以外は HH:mm:ss を返します
func (t TimeOfDay) String() string {
	if t.Second == 0 {
		return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan は sql.Scanner を実装します
// mysql の TIME 型は "21:00:00" や "21:00:00.000000" の形で返ってきます
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = TimeOfDay{Hour: v.Hour(), Minute: v.Minute(), Second: v.Second()}
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case nil:
		return fmt.Errorf("cannot scan NULL into model.TimeOfDay")
	default:
		return fmt.Errorf("unexpected type for model.TimeOfDay: %T", v)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	parsed, err := time.Parse("15:04:05.999999999", s)
	if err != nil {
		return t.UnmarshalText([]byte(s))
	}
	*t = TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute(), Second: parsed.Second()}
	return nil
}

// Value は driver.Valuer を実装します
func (t TimeOfDay) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second), nil
}
