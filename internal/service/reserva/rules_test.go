package reserva

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uma-arai/sbcntr-reserva/internal/model"
)

func TestIsAlphabetic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "英字のみ", input: "Ana", want: true},
		{name: "アクセント付き文字", input: "Múñoz", want: true},
		{name: "空文字", input: "", want: false},
		{name: "数字を含む", input: "Ana1", want: false},
		{name: "空白を含む", input: "Ana Maria", want: false},
		{name: "記号を含む", input: "O'Neil", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAlphabetic(tt.input))
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Luis"))
	assert.ErrorIs(t, ValidateName(""), ErrEmptyInput)
	assert.ErrorIs(t, ValidateName("L1"), ErrNotAlphabetic)
}

func TestParseReservationDate(t *testing.T) {
	today := model.NewDate(2025, time.April, 20)

	tests := []struct {
		name    string
		input   string
		want    model.Date
		wantErr error
	}{
		{name: "今日は受け付ける", input: "20/04/2025", want: today},
		{name: "未来日は受け付ける", input: "01/01/2030", want: model.NewDate(2030, time.January, 1)},
		{name: "過去日は拒否", input: "10/04/2024", wantErr: ErrDateInPast},
		{name: "昨日は拒否", input: "19/04/2025", wantErr: ErrDateInPast},
		{name: "形式不正", input: "2025-04-20", wantErr: ErrInvalidDate},
		{name: "存在しない日付", input: "31/04/2025", wantErr: ErrInvalidDate},
		{name: "空文字", input: "", wantErr: ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReservationDate(tt.input, today)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReservationTime(t *testing.T) {
	hours := DefaultBusinessHours()

	tests := []struct {
		name    string
		input   string
		want    model.TimeOfDay
		wantErr error
	}{
		{name: "開始時刻ちょうど", input: "09:00", want: model.NewTimeOfDay(9, 0)},
		{name: "終了時刻ちょうど", input: "21:00", want: model.NewTimeOfDay(21, 0)},
		{name: "営業時間内", input: "13:45", want: model.NewTimeOfDay(13, 45)},
		{name: "開始前", input: "08:30", wantErr: ErrOutsideBusinessHours},
		{name: "終了後", input: "21:01", wantErr: ErrOutsideBusinessHours},
		{name: "終了後1秒", input: "21:00:01", wantErr: ErrOutsideBusinessHours},
		{name: "形式不正", input: "9h", wantErr: ErrInvalidTime},
		{name: "空文字", input: "", wantErr: ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReservationTime(tt.input, hours)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBusinessHoursCustomWindow(t *testing.T) {
	hours := BusinessHours{Open: model.NewTimeOfDay(8, 0), Close: model.NewTimeOfDay(21, 0)}

	assert.True(t, hours.Contains(model.NewTimeOfDay(8, 30)))
	assert.False(t, hours.Contains(model.NewTimeOfDay(7, 59)))
}
