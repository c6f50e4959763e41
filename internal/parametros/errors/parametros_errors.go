package parametroserrors

import (
	"net/http"

	"github.com/joaquinkuster/rrhh-sub001/internal/shared/apperror"
)

var (
	ErrLimiteFueraDeRango = apperror.New(
		apperror.CodeInvalidInput,
		"el límite de ausencias injustificadas debe estar entre 0 y 10",
		http.StatusBadRequest,
	)
)
