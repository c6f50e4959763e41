package concepto

// TipoConcepto distingue sumas remunerativas de retenciones.
type TipoConcepto string

const (
	TipoRemunerativo TipoConcepto = "remunerativo"
	TipoDeduccion    TipoConcepto = "deduccion"
)

func (t TipoConcepto) EsValido() bool {
	switch t {
	case TipoRemunerativo, TipoDeduccion:
		return true
	default:
		return false
	}
}

// Formula names the base a concept's valor is applied against. The set
// is closed: adding a tag here without handling it in the evaluator is
// a compile-visible change, not a silent runtime string.
type Formula string

const (
	FormulaBasico      Formula = "BASICO"
	FormulaAntiguedad  Formula = "ANTIGUEDAD"
	FormulaPresentismo Formula = "PRESENTISMO"
	FormulaBruto       Formula = "BRUTO"
	FormulaJubilacion  Formula = "JUBILACION"
	FormulaObraSocial  Formula = "OBRA_SOCIAL"
	FormulaPami        Formula = "PAMI"
	FormulaSindical    Formula = "SINDICAL"
)

func (f Formula) EsValida() bool {
	switch f {
	case FormulaBasico, FormulaAntiguedad, FormulaPresentismo,
		FormulaBruto, FormulaJubilacion, FormulaObraSocial,
		FormulaPami, FormulaSindical:
		return true
	default:
		return false
	}
}

// SobreBasico reports whether the formula resolves against the
// contract's base salary. Only remunerative concepts may use these.
func (f Formula) SobreBasico() bool {
	switch f {
	case FormulaBasico, FormulaAntiguedad, FormulaPresentismo:
		return true
	default:
		return false
	}
}

// SobreBruto reports whether the formula resolves against totalBruto.
// JUBILACION, OBRA_SOCIAL, PAMI and SINDICAL are kept as distinct tags
// for labeling, but all resolve the same way BRUTO does.
func (f Formula) SobreBruto() bool {
	switch f {
	case FormulaBruto, FormulaJubilacion, FormulaObraSocial,
		FormulaPami, FormulaSindical:
		return true
	default:
		return false
	}
}

// CompatibleCon rejects the tag/type combinations the evaluator
// refuses to guess around: a deduction against the base salary or a
// remunerative item against a gross that does not exist yet.
func (f Formula) CompatibleCon(tipo TipoConcepto) bool {
	if f.SobreBasico() {
		return tipo == TipoRemunerativo
	}
	if f.SobreBruto() {
		return tipo == TipoDeduccion
	}
	return false
}
