package reserva

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uma-arai/sbcntr-reserva/internal/model"
	"github.com/uma-arai/sbcntr-reserva/internal/repository/repositorytest"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     int64
		wantErr  error
		messages []string
	}{
		{name: "正常なID", input: "7\n", want: 7},
		{
			name:     "数値以外とゼロを再入力",
			input:    "abc\n0\n12\n",
			want:     12,
			messages: []string{"Debe ingresar un número entero válido.", "El ID no puede ser cero."},
		},
		{name: "入力終端", input: "abc\n", wantErr: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, out := newTestService(tt.input, repositorytest.NewMemoryRepository())
			reservation := &model.Reservation{}

			err := svc.ValidateID(reservation)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, reservation.ID)
			for _, m := range tt.messages {
				assert.Contains(t, out.String(), m)
			}
		})
	}
}

func TestValidateNames(t *testing.T) {
	svc, out := newTestService("\nAna1\nAna\nPérez\n", repositorytest.NewMemoryRepository())
	reservation := &model.Reservation{}

	require.NoError(t, svc.ValidateFirstName(reservation))
	require.NoError(t, svc.ValidateLastName(reservation))

	assert.Equal(t, "Ana", reservation.FirstName)
	assert.Equal(t, "Pérez", reservation.LastName)
	assert.Contains(t, out.String(), "El nombre no puede estar vacío.")
	assert.Contains(t, out.String(), "solo puede contener letras")
}

func TestValidateDate(t *testing.T) {
	svc, out := newTestService("10/04/2024\n2025-05-01\n\n21/04/2025\n", repositorytest.NewMemoryRepository())
	reservation := &model.Reservation{}

	require.NoError(t, svc.ValidateDate(reservation))

	assert.Equal(t, model.NewDate(2025, time.April, 21), reservation.Date)
	assert.Contains(t, out.String(), "La fecha no puede ser anterior a hoy.")
	assert.Contains(t, out.String(), "Utilice dd/MM/yyyy")
	assert.Contains(t, out.String(), "La fecha no puede estar vacía.")
}

func TestValidateDateUsesLocation(t *testing.T) {
	// UTC では 4/20 だが UTC-5 では 4/19 の時刻
	now := time.Date(2025, time.April, 20, 2, 0, 0, 0, time.UTC)
	loc := time.FixedZone("UTC-5", -5*60*60)
	svc, _ := newTestService("19/04/2025\n", repositorytest.NewMemoryRepository(),
		WithClock(func() time.Time { return now }),
		WithLocation(loc),
	)
	reservation := &model.Reservation{}

	require.NoError(t, svc.ValidateDate(reservation))
	assert.Equal(t, model.NewDate(2025, time.April, 19), reservation.Date)
}

func TestValidateTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		hours   BusinessHours
		want    model.TimeOfDay
		message string
	}{
		{
			name:    "営業時間外を再入力",
			input:   "08:30\n21:01\n09:00\n",
			hours:   DefaultBusinessHours(),
			want:    model.NewTimeOfDay(9, 0),
			message: "La hora debe estar entre las 09:00 y las 21:00.",
		},
		{
			name:    "形式不正を再入力",
			input:   "nueve\n21:00\n",
			hours:   DefaultBusinessHours(),
			want:    model.NewTimeOfDay(21, 0),
			message: "Formato de hora inválido.",
		},
		{
			name:  "設定した営業時間",
			input: "08:00\n",
			hours: BusinessHours{Open: model.NewTimeOfDay(8, 0), Close: model.NewTimeOfDay(21, 0)},
			want:  model.NewTimeOfDay(8, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, out := newTestService(tt.input, repositorytest.NewMemoryRepository(), WithBusinessHours(tt.hours))
			reservation := &model.Reservation{}

			require.NoError(t, svc.ValidateTime(reservation))
			assert.Equal(t, tt.want, reservation.Time)
			if tt.message != "" {
				assert.Contains(t, out.String(), tt.message)
			}
		})
	}
}

func TestValidateFields(t *testing.T) {
	svc, _ := newTestService("Ana\nRosales\n20/04/2025\n21:00\n", repositorytest.NewMemoryRepository())
	reservation := &model.Reservation{}

	require.NoError(t, svc.ValidateFields(reservation))
	assert.Equal(t, *model.NewReservation("Ana", "Rosales", model.NewDate(2025, time.April, 20), model.NewTimeOfDay(21, 0)), *reservation)

	svc, _ = newTestService("Ana\n", repositorytest.NewMemoryRepository())
	assert.ErrorIs(t, svc.ValidateFields(&model.Reservation{}), io.EOF)
}
