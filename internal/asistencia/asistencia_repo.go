package asistencia

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=asistencia_repo.go -destination=mock/asistencia_repo_mock.go -package=mock
type Repository interface {
	CountAusenciasInjustificadas(ctx context.Context, contratoID string, desde, hasta time.Time) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountAusenciasInjustificadas(
	ctx context.Context,
	contratoID string,
	desde, hasta time.Time,
) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Asistencia{}).
		Where("contrato_id = ?", contratoID).
		Where("estado = ?", EstadoAusenteInjustificada).
		Where("fecha BETWEEN ? AND ?", desde, hasta).
		Count(&count).Error
	return int(count), err
}
