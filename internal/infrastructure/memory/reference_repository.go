package memory

import (
	"sort"

	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

// ReferenceRepository implementa las tablas de referencia en memoria.
type ReferenceRepository struct {
	s *Store
}

var _ repository.ReferenceRepository = (*ReferenceRepository)(nil)

// GetProcessStep paso de proceso o (nil, nil) si no existe.
func (r *ReferenceRepository) GetProcessStep(code string) (*entity.ProcessStep, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	step, ok := r.s.processes[code]
	if !ok {
		return nil, nil
	}
	copia := *step
	return &copia, nil
}

// ListProcessSteps pasos ordenados por nivel.
func (r *ReferenceRepository) ListProcessSteps() ([]*entity.ProcessStep, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*entity.ProcessStep, 0, len(r.s.processes))
	for _, step := range r.s.processes {
		copia := *step
		out = append(out, &copia)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProcessLevel < out[j].ProcessLevel })
	return out, nil
}

// GetQualityGrade grado de calidad o (nil, nil) si no existe.
func (r *ReferenceRepository) GetQualityGrade(code string) (*entity.QualityGrade, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	grade, ok := r.s.grades[code]
	if !ok {
		return nil, nil
	}
	copia := *grade
	return &copia, nil
}

// ListQualityGrades grados ordenados por código.
func (r *ReferenceRepository) ListQualityGrades() ([]*entity.QualityGrade, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*entity.QualityGrade, 0, len(r.s.grades))
	for _, grade := range r.s.grades {
		copia := *grade
		out = append(out, &copia)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GradeCode < out[j].GradeCode })
	return out, nil
}
