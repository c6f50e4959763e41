package concepto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Concepto struct {
	ID     uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string       `gorm:"type:varchar(120);not null"`
	Tipo   TipoConcepto `gorm:"type:varchar(20);not null"`

	// Valor holds percentage points when EsPorcentaje, a fixed amount
	// otherwise. Stored as numeric, never float.
	EsPorcentaje bool            `gorm:"not null;default:false"`
	Valor        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Formula      *Formula        `gorm:"type:varchar(30)"`

	// Obligatory concepts are seeded by the system and reject deletes.
	EsObligatorio bool `gorm:"not null;default:false"`
	Activo        bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Concepto) TableName() string {
	return "conceptos"
}
