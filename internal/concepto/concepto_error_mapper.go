package concepto

import (
	"errors"
	"strings"

	conceptoerrors "github.com/joaquinkuster/rrhh-sub001/internal/concepto/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return conceptoerrors.ErrConceptoNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_conceptos_nombre_activo" {
			return conceptoerrors.ErrNombreDuplicado
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_conceptos_nombre_activo") {
		return conceptoerrors.ErrNombreDuplicado
	}

	return err
}
