package reserva

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/uma-arai/sbcntr-reserva/internal/common/terminal"
	"github.com/uma-arai/sbcntr-reserva/internal/model"
	"github.com/uma-arai/sbcntr-reserva/internal/repository"
)

const defaultQueryTimeout = 5 * time.Second

// Service は予約の入力検証と永続化の呼び出しを担当します
// リポジトリのエラーはログに出力し、bool や空の一覧に変換して返します
type Service struct {
	term         *terminal.Terminal
	repo         repository.ReservationRepository
	hours        BusinessHours
	location     *time.Location
	now          func() time.Time
	queryTimeout time.Duration
}

type Option func(*Service)

// WithBusinessHours は予約を受け付ける時間帯を設定します
func WithBusinessHours(hours BusinessHours) Option {
	return func(s *Service) { s.hours = hours }
}

// WithClock は「今日」の算出に使う時計を差し替えます
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithQueryTimeout はリポジトリ呼び出し1回あたりのタイムアウトを設定します
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

func NewService(term *terminal.Terminal, repo repository.ReservationRepository, opts ...Option) *Service {
	s := &Service{
		term:         term,
		repo:         repo,
		hours:        DefaultBusinessHours(),
		location:     time.Local,
		now:          time.Now,
		queryTimeout: defaultQueryTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() model.Date {
	return model.DateOf(s.now().In(s.location))
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

// ListReservations は全予約を返します。失敗時は空の一覧です
func (s *Service) ListReservations(ctx context.Context) []model.Reservation {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	reservations, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("Failed to list reservations: %v", err)
		return []model.Reservation{}
	}
	return reservations
}

// ShowReservations は全予約を表示し、1件以上あった場合に true を返します
func (s *Service) ShowReservations(ctx context.Context) bool {
	reservations := s.ListReservations(ctx)
	if len(reservations) == 0 {
		s.term.Println("El listado de reservas está vacío.")
		return false
	}
	for _, r := range reservations {
		s.term.Println(r)
	}
	return true
}

// FindReservation は reservation.ID の予約を探し、見つかれば reservation を埋めます
func (s *Service) FindReservation(ctx context.Context, reservation *model.Reservation) bool {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	found, err := s.repo.FindByID(ctx, reservation)
	if err != nil {
		log.Printf("Failed to find reservation %d: %v", reservation.ID, err)
		return false
	}
	return found
}

// InsertReservation は予約を登録し、採番されたIDを reservation に書き戻します
func (s *Service) InsertReservation(ctx context.Context, reservation *model.Reservation) bool {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.repo.Create(ctx, reservation)
	switch {
	case err == nil:
		return true
	case errors.Is(err, repository.ErrSlotTaken):
		s.term.Println("Ya existe una reserva para esa fecha y hora.")
	default:
		s.term.Println("Error al agregar la reserva.")
	}
	log.Printf("Failed to insert reservation: %v", err)
	return false
}

// ModifyReservation は reservation.ID の予約を上書きします
func (s *Service) ModifyReservation(ctx context.Context, reservation *model.Reservation) bool {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.repo.Update(ctx, reservation)
	switch {
	case err == nil:
		return true
	case errors.Is(err, repository.ErrReservationNotFound):
		s.term.Println("La reserva no existe.")
	case errors.Is(err, repository.ErrSlotTaken):
		s.term.Println("Ya existe otra reserva para esa fecha y hora.")
	default:
		s.term.Println("Error al actualizar la reserva.")
	}
	log.Printf("Failed to update reservation %d: %v", reservation.ID, err)
	return false
}

// RemoveReservation は reservation.ID の予約を削除します
func (s *Service) RemoveReservation(ctx context.Context, reservation *model.Reservation) bool {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repo.Delete(ctx, reservation); err != nil {
		log.Printf("Failed to delete reservation %d: %v", reservation.ID, err)
		return false
	}
	return true
}
