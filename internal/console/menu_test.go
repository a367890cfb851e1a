package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uma-arai/sbcntr-reserva/internal/common/terminal"
	"github.com/uma-arai/sbcntr-reserva/internal/model"
	"github.com/uma-arai/sbcntr-reserva/internal/repository/repositorytest"
	"github.com/uma-arai/sbcntr-reserva/internal/service/reserva"
)

func newTestMenu(input string, repo *repositorytest.MemoryRepository) (*Menu, *bytes.Buffer) {
	out := &bytes.Buffer{}
	term := terminal.New(strings.NewReader(input), out)
	svc := reserva.NewService(term, repo,
		reserva.WithClock(func() time.Time { return time.Date(2025, time.April, 20, 12, 0, 0, 0, time.UTC) }),
		reserva.WithLocation(time.UTC),
	)
	return NewMenu(term, svc), out
}

func seededRepository() *repositorytest.MemoryRepository {
	return repositorytest.NewMemoryRepository(model.Reservation{
		ID:        1,
		FirstName: "Ana",
		LastName:  "Rosales",
		Date:      model.NewDate(2025, time.April, 20),
		Time:      model.NewTimeOfDay(21, 0),
	})
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "一覧", input: "1", want: OptionList},
		{name: "前後の空白", input: " 6 ", want: OptionExit},
		{name: "数値以外", input: "uno", want: OptionInvalid},
		{name: "空文字", input: "", want: OptionInvalid},
		{name: "範囲外", input: "9", want: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOption(tt.input))
		})
	}
}

func TestMenuRun(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRows int
		contains []string
		excludes []string
	}{
		{
			name:     "終了",
			input:    "6\n",
			wantRows: 1,
			contains: []string{"Hasta pronto."},
		},
		{
			name:     "入力終端で終了",
			input:    "1\n",
			wantRows: 1,
			contains: []string{"id=1, nombreReserva=Ana"},
		},
		{
			name:     "不正な選択肢",
			input:    "abc\n9\n6\n",
			wantRows: 1,
			contains: []string{"Opción inválida."},
		},
		{
			name:     "検索",
			input:    "2\n1\n6\n",
			wantRows: 1,
			contains: []string{"apellidoReserva=Rosales"},
		},
		{
			name:     "存在しない予約を検索",
			input:    "2\n5\n6\n",
			wantRows: 1,
			contains: []string{"No se encontró la reserva con ID 5."},
		},
		{
			name:     "追加",
			input:    "3\nLuis\nPerez\n21/04/2025\n10:00\n6\n",
			wantRows: 2,
			contains: []string{"Reserva agregada con ID 2."},
		},
		{
			name:     "同じ日時は追加できない",
			input:    "3\nLuis\nPerez\n20/04/2025\n21:00\n6\n",
			wantRows: 1,
			contains: []string{"Ya existe una reserva para esa fecha y hora."},
			excludes: []string{"Reserva agregada"},
		},
		{
			name:     "変更",
			input:    "4\n1\nCarla\nRosales\n22/04/2025\n20:30\n6\n",
			wantRows: 1,
			contains: []string{"Reserva actual:", "Reserva modificada:", "nombreReserva=Carla"},
		},
		{
			name:     "小文字のsで削除",
			input:    "5\n1\ns\n6\n",
			wantRows: 0,
			contains: []string{"Reserva eliminada."},
		},
		{
			name:     "S以外は削除を取り消す",
			input:    "5\n1\nsi\n6\n",
			wantRows: 1,
			contains: []string{"Eliminación cancelada."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seededRepository()
			menu, out := newTestMenu(tt.input, repo)

			require.NoError(t, menu.Run(context.Background()))
			assert.Equal(t, tt.wantRows, repo.Len())
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestMenuRunCancelledContext(t *testing.T) {
	menu, _ := newTestMenu("1\n6\n", seededRepository())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, menu.Run(ctx), context.Canceled)
}
