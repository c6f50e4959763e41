package asistencia

import (
	"time"

	"github.com/google/uuid"
)

const (
	EstadoPresente             = "presente"
	EstadoAusenteJustificada   = "ausente_justificada"
	EstadoAusenteInjustificada = "ausente_injustificada"
)

// Asistencia is the attendance fact recorded by the attendance
// subsystem; the settlement engine only counts unexcused absences.
type Asistencia struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContratoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Fecha      time.Time `gorm:"type:date;not null;index"`
	Estado     string    `gorm:"type:varchar(30);not null"`
}

func (Asistencia) TableName() string {
	return "asistencias"
}
