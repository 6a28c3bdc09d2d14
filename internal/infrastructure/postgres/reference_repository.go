package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo implementación de las tablas de referencia sobre PostgreSQL.
// Solo lectura; los datos los siembra la migración.
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador de tablas de referencia. Pasar pool o tx (Querier).
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

// GetProcessStep paso de proceso o (nil, nil) si no existe.
func (r *ReferenceRepo) GetProcessStep(code string) (*entity.ProcessStep, error) {
	var p entity.ProcessStep
	err := r.q.QueryRow(context.Background(),
		`SELECT process_code, process_name, process_level, accuracy_type
		 FROM process_steps WHERE process_code = $1`, code).
		Scan(&p.ProcessCode, &p.ProcessName, &p.ProcessLevel, &p.AccuracyType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get process step: %w", err)
	}
	return &p, nil
}

// ListProcessSteps pasos ordenados por nivel.
func (r *ReferenceRepo) ListProcessSteps() ([]*entity.ProcessStep, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT process_code, process_name, process_level, accuracy_type
		 FROM process_steps ORDER BY process_level`)
	if err != nil {
		return nil, fmt.Errorf("list process steps: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProcessStep
	for rows.Next() {
		var p entity.ProcessStep
		if err := rows.Scan(&p.ProcessCode, &p.ProcessName, &p.ProcessLevel, &p.AccuracyType); err != nil {
			return nil, fmt.Errorf("scan process step: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// GetQualityGrade grado de calidad o (nil, nil) si no existe.
func (r *ReferenceRepo) GetQualityGrade(code string) (*entity.QualityGrade, error) {
	var g entity.QualityGrade
	err := r.q.QueryRow(context.Background(),
		`SELECT grade_code, grade_name, processing_rule
		 FROM quality_grades WHERE grade_code = $1`, code).
		Scan(&g.GradeCode, &g.GradeName, &g.ProcessingRule)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quality grade: %w", err)
	}
	return &g, nil
}

// ListQualityGrades grados ordenados por código.
func (r *ReferenceRepo) ListQualityGrades() ([]*entity.QualityGrade, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT grade_code, grade_name, processing_rule
		 FROM quality_grades ORDER BY grade_code`)
	if err != nil {
		return nil, fmt.Errorf("list quality grades: %w", err)
	}
	defer rows.Close()

	var list []*entity.QualityGrade
	for rows.Next() {
		var g entity.QualityGrade
		if err := rows.Scan(&g.GradeCode, &g.GradeName, &g.ProcessingRule); err != nil {
			return nil, fmt.Errorf("scan quality grade: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}
