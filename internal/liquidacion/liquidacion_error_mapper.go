package liquidacion

import (
	"errors"

	liquidacionerrors "github.com/joaquinkuster/rrhh-sub001/internal/liquidacion/errors"

	"gorm.io/gorm"
)

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return liquidacionerrors.ErrLiquidacionNotFound
	}

	return err
}
