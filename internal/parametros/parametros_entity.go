package parametros

import "time"

// ParametrosLaborales is a process-wide singleton row (ID fixed at 1).
type ParametrosLaborales struct {
	ID                          int `gorm:"primaryKey"`
	LimiteAusenciaInjustificada int `gorm:"not null;default:2"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ParametrosLaborales) TableName() string {
	return "parametros_laborales"
}

const SingletonID = 1

// LimiteAusenciaDefault applies when the row has never been configured.
const LimiteAusenciaDefault = 2
