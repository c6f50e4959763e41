package parametros

type UpdateParametrosRequest struct {
	LimiteAusenciaInjustificada *int `json:"limiteAusenciaInjustificada" binding:"required"`
}

type ParametrosResponse struct {
	LimiteAusenciaInjustificada int `json:"limiteAusenciaInjustificada"`
}
