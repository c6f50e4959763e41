package liquidacion

import (
	"time"

	"github.com/joaquinkuster/rrhh-sub001/internal/contrato"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Liquidacion struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContratoID uuid.UUID          `gorm:"type:uuid;not null;index:uq_liquidaciones_contrato_periodo,unique"`
	Contrato   *contrato.Contrato `gorm:"foreignKey:ContratoID;references:ID"`

	// Periodo liquidado (un mes calendario)
	FechaInicio time.Time `gorm:"type:date;not null;index:uq_liquidaciones_contrato_periodo,unique"`
	FechaFin    time.Time `gorm:"type:date;not null;index:uq_liquidaciones_contrato_periodo,unique"`

	// Line items. All monetary columns are numeric, never float, so
	// repeated settlements never drift.
	Basico              decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Antiguedad          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Presentismo         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	HorasExtras         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Vacaciones          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	SAC                 decimal.Decimal `gorm:"column:sac;type:numeric(14,2);not null;default:0"`
	Inasistencias       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	VacacionesNoGozadas decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	TotalBruto       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalRetenciones decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Neto             decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	// Once paid the record is immutable; every write path re-checks
	// this flag inside its transaction.
	EstaPagada bool       `gorm:"not null;default:false;index"`
	FechaPago  *time.Time `gorm:"type:timestamptz"`

	ReciboURL        *string
	ReciboGeneradoEn *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Liquidacion) TableName() string {
	return "liquidaciones"
}
