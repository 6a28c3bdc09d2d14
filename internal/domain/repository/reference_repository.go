package repository

import "github.com/jvargas/trazalote/internal/domain/entity"

// ReferenceRepository puerto de las tablas de referencia (pasos de proceso y
// grados de calidad). Datos sembrados por migración; solo lectura en runtime.
type ReferenceRepository interface {
	GetProcessStep(code string) (*entity.ProcessStep, error)
	ListProcessSteps() ([]*entity.ProcessStep, error)
	GetQualityGrade(code string) (*entity.QualityGrade, error)
	ListQualityGrades() ([]*entity.QualityGrade, error)
}
