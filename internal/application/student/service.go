package student

import (
	"context"
	"fmt"
	"time"

	"github.com/crystal-land-academy/api/internal/domain"
	"github.com/crystal-land-academy/api/internal/pkg/validate"
)

type Service interface {
	ListByTeacherAndClass(ctx context.Context, q domain.StudentQuery, section, className, subclass string) ([]domain.Student, error)
	PostComment(ctx context.Context, q domain.StudentQuery, req domain.PostCommentRequest) (*domain.Student, error)
}

type studentStore interface {
	Get(ctx context.Context, studentID string) (*domain.Student, error)
	ListBySection(ctx context.Context, section string) ([]domain.Student, error)
	AppendComment(ctx context.Context, studentID string, c domain.StudentComment) error
}

type classLevelStore interface {
	Get(ctx context.Context, classLevelID string) (*domain.ClassLevel, error)
}

type service struct {
	students    studentStore
	classLevels classLevelStore
	now         func() time.Time
}

func NewService(students studentStore, classLevels classLevelStore) Service {
	return &service{students: students, classLevels: classLevels, now: time.Now}
}

// ListByTeacherAndClass returns the students of the teacher's class scoped by
// the path triple. The teacherId query parameter must be present; year/term
// scoping is carried in q for the storage layer.
func (s *service) ListByTeacherAndClass(ctx context.Context, q domain.StudentQuery, section, className, subclass string) ([]domain.Student, error) {
	if q.TeacherID == "" {
		return nil, fmt.Errorf("teacherId is required: %w", domain.ErrBadRequest)
	}

	// The section GSI scopes the query; class and subclass narrow in memory.
	all, err := s.students.ListBySection(ctx, section)
	if err != nil {
		return nil, err
	}
	students := make([]domain.Student, 0, len(all))
	for _, st := range all {
		if st.ClassName == className && st.Subclass == subclass {
			students = append(students, st)
		}
	}
	return students, nil
}

// PostComment validates the body and appends the teacher's remark to the
// student record, returning the updated student.
func (s *service) PostComment(ctx context.Context, q domain.StudentQuery, req domain.PostCommentRequest) (*domain.Student, error) {
	if q.TeacherID == "" {
		return nil, fmt.Errorf("teacherId is required: %w", domain.ErrBadRequest)
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.classLevels.Get(ctx, req.ClassLevelID); err != nil {
		return nil, err
	}

	c := domain.StudentComment{
		TeacherID: q.TeacherID,
		Comment:   req.Comment,
		CreatedAt: s.now().UTC(),
	}
	if err := s.students.AppendComment(ctx, req.StudentID, c); err != nil {
		return nil, err
	}
	return s.students.Get(ctx, req.StudentID)
}
