package entity

// ProcessStep paso de manufactura de referencia. ProcessLevel ordena el
// pipeline: un lote solo puede consumirse hacia lotes de nivel estrictamente
// mayor (más aguas abajo).
type ProcessStep struct {
	ProcessCode  string // una letra: P, W, B, S, C, F, E
	ProcessName  string
	ProcessLevel int
	AccuracyType string
}

// QualityGrade grado de calidad de referencia. Solo se usa para validación y
// display; no participa en la lógica de grafos.
type QualityGrade struct {
	GradeCode      string
	GradeName      string
	ProcessingRule string
}
