package liquidacion

import (
	"fmt"
	"time"
)

// Periodo delimits one settlement window. The batch cadence is a
// calendar month: records are generated on the first day of each month
// for that month, with no proration for mid-month hires.
type Periodo struct {
	Inicio time.Time
	Fin    time.Time
}

// PeriodoDelMes returns the calendar-month period containing ref.
func PeriodoDelMes(ref time.Time) Periodo {
	inicio := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	fin := inicio.AddDate(0, 1, -1)
	return Periodo{Inicio: inicio, Fin: fin}
}

func (p Periodo) String() string {
	return fmt.Sprintf("%04d-%02d", p.Inicio.Year(), p.Inicio.Month())
}

// ParsePeriodo acepta "YYYY-MM"; vacío significa el mes corriente.
func ParsePeriodo(s string) (Periodo, error) {
	if s == "" {
		return PeriodoDelMes(time.Now().UTC()), nil
	}
	ref, err := time.Parse("2006-01", s)
	if err != nil {
		return Periodo{}, fmt.Errorf("período inválido %q, se espera YYYY-MM", s)
	}
	return PeriodoDelMes(ref), nil
}
