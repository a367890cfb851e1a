package reserva

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/uma-arai/sbcntr-reserva/internal/model"
)

// 以下の Validate* は有効な値が入力されるまでプロンプトを繰り返します
// エラーを返すのは入力が終端に達したか読み込みに失敗した場合だけです

func (s *Service) ValidateID(reservation *model.Reservation) error {
	for {
		line, err := s.term.ReadLine("Ingrese el ID de la reserva: ")
		if err != nil {
			return err
		}

		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			s.term.Println("Error: Debe ingresar un número entero válido.")
			continue
		}
		if id == 0 {
			s.term.Println("El ID no puede ser cero. Intente nuevamente.")
			continue
		}

		reservation.ID = id
		return nil
	}
}

func (s *Service) ValidateFirstName(reservation *model.Reservation) error {
	name, err := s.readName("Ingrese el nombre de la reserva: ", "El nombre")
	if err != nil {
		return err
	}
	reservation.FirstName = name
	return nil
}

func (s *Service) ValidateLastName(reservation *model.Reservation) error {
	name, err := s.readName("Ingrese el apellido de la reserva: ", "El apellido")
	if err != nil {
		return err
	}
	reservation.LastName = name
	return nil
}

func (s *Service) readName(prompt, field string) (string, error) {
	for {
		line, err := s.term.ReadLine(prompt)
		if err != nil {
			return "", err
		}

		switch err := ValidateName(line); {
		case err == nil:
			return line, nil
		case errors.Is(err, ErrEmptyInput):
			s.term.Printf("%s no puede estar vacío.\n", field)
		default:
			s.term.Printf("%s de la reserva solo puede contener letras. Intente nuevamente.\n", field)
		}
	}
}

func (s *Service) ValidateDate(reservation *model.Reservation) error {
	for {
		line, err := s.term.ReadLine("Ingrese la fecha de la reserva en formato (dd/MM/yyyy): ")
		if err != nil {
			return err
		}

		date, err := ParseReservationDate(line, s.today())
		switch {
		case err == nil:
			reservation.Date = date
			return nil
		case errors.Is(err, ErrEmptyInput):
			s.term.Println("La fecha no puede estar vacía.")
		case errors.Is(err, ErrDateInPast):
			s.term.Println("La fecha no puede ser anterior a hoy.")
		default:
			s.term.Println("Formato de fecha inválido. Utilice dd/MM/yyyy.")
		}
	}
}

func (s *Service) ValidateTime(reservation *model.Reservation) error {
	for {
		line, err := s.term.ReadLine("Ingrese la hora de la reserva en formato (HH:mm): ")
		if err != nil {
			return err
		}

		at, err := ParseReservationTime(line, s.hours)
		switch {
		case err == nil:
			reservation.Time = at
			return nil
		case errors.Is(err, ErrEmptyInput):
			s.term.Println("La hora no puede estar vacía.")
		case errors.Is(err, ErrOutsideBusinessHours):
			s.term.Println(s.hoursMessage())
		default:
			s.term.Println("Formato de hora inválido. Utilice HH:mm.")
		}
	}
}

func (s *Service) hoursMessage() string {
	return fmt.Sprintf("La hora debe estar entre las %s y las %s.", s.hours.Open, s.hours.Close)
}

// ValidateFields は名前・姓・日付・時刻を順に入力させます
func (s *Service) ValidateFields(reservation *model.Reservation) error {
	steps := []func(*model.Reservation) error{
		s.ValidateFirstName,
		s.ValidateLastName,
		s.ValidateDate,
		s.ValidateTime,
	}
	for _, step := range steps {
		if err := step(reservation); err != nil {
			return err
		}
	}
	return nil
}
