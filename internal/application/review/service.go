package review

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/crystal-land-academy/api/internal/domain"
	"github.com/crystal-land-academy/api/internal/pkg/id"
)

// defaultProgram is used when a class level carries no section.
const defaultProgram = "Unknown"

type Service interface {
	TeachersByClassLevel(ctx context.Context, classLevelID string) ([]domain.TeacherView, error)
	UploadProfilePicture(ctx context.Context, teacherID, b64Data string) (string, error)
	RemoveProfilePicture(ctx context.Context, teacherID string) error
}

type classLevelStore interface {
	Get(ctx context.Context, classLevelID string) (*domain.ClassLevel, error)
}

type teacherStore interface {
	Get(ctx context.Context, teacherID string) (*domain.Teacher, error)
	GetMany(ctx context.Context, teacherIDs []string) ([]domain.Teacher, error)
	Update(ctx context.Context, teacherID string, updates map[string]interface{}) error
}

type pictureStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	classLevels classLevelStore
	teachers    teacherStore
	pictures    pictureStore
}

func NewService(classLevels classLevelStore, teachers teacherStore, pictures pictureStore) Service {
	return &service{classLevels: classLevels, teachers: teachers, pictures: pictures}
}

// TeachersByClassLevel resolves the class level's assigned teachers and
// projects them for review screens. A class level with no teachers yields an
// empty slice, not an error.
func (s *service) TeachersByClassLevel(ctx context.Context, classLevelID string) ([]domain.TeacherView, error) {
	if !id.Valid(classLevelID) {
		return nil, fmt.Errorf("invalid class level id %q: %w", classLevelID, domain.ErrBadRequest)
	}

	cl, err := s.classLevels.Get(ctx, classLevelID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.TeacherView, 0, len(cl.TeacherIDs))
	if len(cl.TeacherIDs) == 0 {
		return views, nil
	}

	teachers, err := s.teachers.GetMany(ctx, cl.TeacherIDs)
	if err != nil {
		return nil, err
	}

	program := cl.Section
	if program == "" {
		program = defaultProgram
	}
	for _, t := range teachers {
		views = append(views, domain.TeacherView{
			ID:                t.TeacherID,
			TeacherID:         t.TeacherID,
			Name:              t.FirstName + " " + t.LastName,
			FirstName:         t.FirstName,
			LastName:          t.LastName,
			Role:              t.Role,
			Program:           program,
			ProfilePictureURL: t.ProfilePictureURL,
		})
	}
	return views, nil
}

// UploadProfilePicture stores the decoded image in S3 and records its URL on
// the teacher. Returns the stored URL.
func (s *service) UploadProfilePicture(ctx context.Context, teacherID, b64Data string) (string, error) {
	if !id.Valid(teacherID) {
		return "", fmt.Errorf("invalid teacher id %q: %w", teacherID, domain.ErrBadRequest)
	}
	if b64Data == "" {
		return "", fmt.Errorf("picture data is required: %w", domain.ErrBadRequest)
	}
	if _, err := base64.StdEncoding.DecodeString(b64Data); err != nil {
		return "", fmt.Errorf("picture data is not valid base64: %w", domain.ErrBadRequest)
	}
	if _, err := s.teachers.Get(ctx, teacherID); err != nil {
		return "", err
	}

	url, err := s.pictures.UploadBase64(ctx, "teachers/"+teacherID+".png", b64Data)
	if err != nil {
		return "", fmt.Errorf("upload profile picture: %w", err)
	}
	if err := s.teachers.Update(ctx, teacherID, map[string]interface{}{"profile_picture_url": url}); err != nil {
		return "", err
	}
	return url, nil
}

// RemoveProfilePicture deletes the stored image and clears the URL on the
// teacher record.
func (s *service) RemoveProfilePicture(ctx context.Context, teacherID string) error {
	if !id.Valid(teacherID) {
		return fmt.Errorf("invalid teacher id %q: %w", teacherID, domain.ErrBadRequest)
	}
	if _, err := s.teachers.Get(ctx, teacherID); err != nil {
		return err
	}
	if err := s.pictures.Delete(ctx, "teachers/"+teacherID+".png"); err != nil {
		return fmt.Errorf("delete profile picture: %w", err)
	}
	return s.teachers.Update(ctx, teacherID, map[string]interface{}{"profile_picture_url": ""})
}
