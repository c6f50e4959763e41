package contrato

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados relevantes para la liquidación. El CRUD de contratos vive en
// otro subsistema; acá solo se leen snapshots.
const (
	EstadoEnCurso    = "en_curso"
	EstadoFinalizado = "finalizado"
)

type Contrato struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EspacioTrabajoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmpleadoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Empleado         *EmpleadoRef    `gorm:"foreignKey:EmpleadoID;references:ID"`
	Salario          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	FechaInicio      time.Time       `gorm:"type:date;not null"`
	FechaFin         *time.Time      `gorm:"type:date"`
	Estado           string          `gorm:"type:varchar(30);not null"`
}

func (Contrato) TableName() string {
	return "contratos"
}

type EmpleadoRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre   string    `gorm:"column:nombre"`
	Apellido string    `gorm:"column:apellido"`
}

func (EmpleadoRef) TableName() string {
	return "empleados"
}

func (e EmpleadoRef) NombreCompleto() string {
	return e.Apellido + ", " + e.Nombre
}
