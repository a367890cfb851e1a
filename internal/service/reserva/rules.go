package reserva

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/uma-arai/sbcntr-reserva/internal/model"
)

var (
	ErrEmptyInput           = errors.New("input is empty")
	ErrNotAlphabetic        = errors.New("input must contain only letters")
	ErrInvalidDate          = errors.New("date must use the dd/MM/yyyy format")
	ErrDateInPast           = errors.New("date is before today")
	ErrInvalidTime          = errors.New("time must use the HH:mm format")
	ErrOutsideBusinessHours = errors.New("time is outside business hours")
)

// BusinessHours は予約可能な時間帯です。開始・終了時刻ちょうども含みます
type BusinessHours struct {
	Open  model.TimeOfDay
	Close model.TimeOfDay
}

// DefaultBusinessHours は 09:00〜21:00 を返します
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		Open:  model.NewTimeOfDay(9, 0),
		Close: model.NewTimeOfDay(21, 0),
	}
}

func (h BusinessHours) Contains(t model.TimeOfDay) bool {
	return !t.Before(h.Open) && !t.After(h.Close)
}

// IsAlphabetic は空でなく、全ての文字が英字・アクセント付き文字などのletterであるかを返します
func IsAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ValidateName は名前・姓の入力規則を検証します
func ValidateName(s string) error {
	if s == "" {
		return ErrEmptyInput
	}
	if !IsAlphabetic(s) {
		return ErrNotAlphabetic
	}
	return nil
}

// ParseReservationDate は dd/MM/yyyy 形式の日付を解析し、today より前なら拒否します
func ParseReservationDate(s string, today model.Date) (model.Date, error) {
	if s == "" {
		return model.Date{}, ErrEmptyInput
	}
	date, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if date.Before(today) {
		return model.Date{}, ErrDateInPast
	}
	return date, nil
}

// ParseReservationTime は HH:mm 形式の時刻を解析し、営業時間外なら拒否します
func ParseReservationTime(s string, hours BusinessHours) (model.TimeOfDay, error) {
	if s == "" {
		return model.TimeOfDay{}, ErrEmptyInput
	}
	t, err := model.ParseTimeOfDay(s)
	if err != nil {
		return model.TimeOfDay{}, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	if !hours.Contains(t) {
		return model.TimeOfDay{}, ErrOutsideBusinessHours
	}
	return t, nil
}
