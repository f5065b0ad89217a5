package academicyear

import (
	"context"
	"fmt"

	"github.com/crystal-land-academy/api/internal/domain"
)

type Service interface {
	List(ctx context.Context) ([]domain.AcademicYearView, error)
}

type academicYearStore interface {
	Scan(ctx context.Context) ([]domain.AcademicYear, error)
}

type service struct {
	repo academicYearStore
}

func NewService(repo academicYearStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.AcademicYearView, error) {
	years, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch academic years: %w", err)
	}
	views := make([]domain.AcademicYearView, 0, len(years))
	for _, y := range years {
		views = append(views, domain.AcademicYearView{
			AcademicYearID: y.AcademicYearID,
			Name:           y.Name,
		})
	}
	return views, nil
}
