package review

import (
	"context"
	"fmt"
	"testing"

	"github.com/crystal-land-academy/api/internal/domain"
	"github.com/crystal-land-academy/api/internal/pkg/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClassLevelStore struct{ mock.Mock }

func (m *mockClassLevelStore) Get(ctx context.Context, classLevelID string) (*domain.ClassLevel, error) {
	args := m.Called(ctx, classLevelID)
	if cl, _ := args.Get(0).(*domain.ClassLevel); cl != nil {
		return cl, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTeacherStore struct{ mock.Mock }

func (m *mockTeacherStore) Get(ctx context.Context, teacherID string) (*domain.Teacher, error) {
	args := m.Called(ctx, teacherID)
	if t, _ := args.Get(0).(*domain.Teacher); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTeacherStore) GetMany(ctx context.Context, teacherIDs []string) ([]domain.Teacher, error) {
	args := m.Called(ctx, teacherIDs)
	if ts, _ := args.Get(0).([]domain.Teacher); ts != nil {
		return ts, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTeacherStore) Update(ctx context.Context, teacherID string, updates map[string]interface{}) error {
	return m.Called(ctx, teacherID, updates).Error(0)
}

type mockPictureStore struct{ mock.Mock }

func (m *mockPictureStore) UploadBase64(ctx context.Context, key, b64Data string) (string, error) {
	args := m.Called(ctx, key, b64Data)
	return args.String(0), args.Error(1)
}

func (m *mockPictureStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newTestSvc(cls *mockClassLevelStore, ts *mockTeacherStore, ps *mockPictureStore) Service {
	return NewService(cls, ts, ps)
}

func TestTeachersByClassLevel_MalformedID_NoStorageAccess(t *testing.T) {
	cls, ts, ps := &mockClassLevelStore{}, &mockTeacherStore{}, &mockPictureStore{}

	_, err := newTestSvc(cls, ts, ps).TeachersByClassLevel(context.Background(), "not-a-ulid")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	cls.AssertNotCalled(t, "Get")
}

func TestTeachersByClassLevel_NotFound(t *testing.T) {
	cls, ts, ps := &mockClassLevelStore{}, &mockTeacherStore{}, &mockPictureStore{}
	clID := id.New()
	cls.On("Get", mock.Anything, clID).
		Return(nil, fmt.Errorf("class level not found: %w", domain.ErrNotFound))

	_, err := newTestSvc(cls, ts, ps).TeachersByClassLevel(context.Background(), clID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTeachersByClassLevel_NoTeachers_EmptySlice(t *testing.T) {
	cls, ts, ps := &mockClassLevelStore{}, &mockTeacherStore{}, &mockPictureStore{}
	clID := id.New()
	cls.On("Get", mock.Anything, clID).Return(&domain.ClassLevel{
		ClassLevelID: clID, Name: "Primary 1", Section: "Primary",
	}, nil)

	views, err := newTestSvc(cls, ts, ps).TeachersByClassLevel(context.Background(), clID)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
	ts.AssertNotCalled(t, "GetMany")
}

func TestTeachersByClassLevel_ProjectsTeachers(t *testing.T) {
	cls, ts, ps := &mockClassLevelStore{}, &mockTeacherStore{}, &mockPictureStore{}
	clID := id.New()
	cls.On("Get", mock.Anything, clID).Return(&domain.ClassLevel{
		ClassLevelID: clID,
		Name:         "JSS 2",
		Section:      "Secondary",
		TeacherIDs:   []string{"t1", "t2"},
	}, nil)
	ts.On("GetMany", mock.Anything, []string{"t1", "t2"}).Return([]domain.Teacher{
		{TeacherID: "t1", FirstName: "Ada", LastName: "Obi", Role: "teacher", ProfilePictureURL: "s3://pics/t1.png"},
		{TeacherID: "t2", FirstName: "Ben", LastName: "Eze", Role: "teacher"},
	}, nil)

	views, err := newTestSvc(cls, ts, ps).TeachersByClassLevel(context.Background(), clID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "t1", views[0].ID)
	assert.Equal(t, "Ada Obi", views[0].Name)
	assert.Equal(t, "Secondary", views[0].Program)
	assert.Equal(t, "s3://pics/t1.png", views[0].ProfilePictureURL)

	// Defaults: empty picture URL stays empty.
	assert.Equal(t, "", views[1].ProfilePictureURL)
}

func TestTeachersByClassLevel_EmptySectionDefaultsToUnknown(t *testing.T) {
	cls, ts, ps := &mockClassLevelStore{}, &mockTeacherStore{}, &mockPictureStore{}
	clID := id.New()
	cls.On("Get", mock.Anything, clID).Return(&domain.ClassLevel{
		ClassLevelID: clID, TeacherIDs: []string{"t1"},
	}, nil)
	ts.On("GetMany", mock.Anything, []string{"t1"}).Return([]domain.Teacher{
		{TeacherID: "t1", FirstName: "Ada", LastName: "Obi"},
	}, nil)

	views, err := newTestSvc(cls, ts, ps).TeachersByClassLevel(context.Background(), clID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Unknown", views[0].Program)
}

func TestUploadProfilePicture_StoresURLOnTeacher(t *testing.T) {
	cls, ts, ps := &mockClassLevelStore{}, &mockTeacherStore{}, &mockPictureStore{}
	tID := id.New()
	ts.On("Get", mock.Anything, tID).Return(&domain.Teacher{TeacherID: tID}, nil)
	ps.On("UploadBase64", mock.Anything, "teachers/"+tID+".png", "aGVsbG8=").
		Return("s3://pics/teachers/"+tID+".png", nil)
	ts.On("Update", mock.Anything, tID, map[string]interface{}{
		"profile_picture_url": "s3://pics/teachers/" + tID + ".png",
	}).Return(nil)

	url, err := newTestSvc(cls, ts, ps).UploadProfilePicture(context.Background(), tID, "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "s3://pics/teachers/"+tID+".png", url)
	ts.AssertExpectations(t)
}

func TestRemoveProfilePicture_DeletesObjectAndClearsURL(t *testing.T) {
	cls, ts, ps := &mockClassLevelStore{}, &mockTeacherStore{}, &mockPictureStore{}
	tID := id.New()
	ts.On("Get", mock.Anything, tID).Return(&domain.Teacher{
		TeacherID: tID, ProfilePictureURL: "s3://pics/teachers/" + tID + ".png",
	}, nil)
	ps.On("Delete", mock.Anything, "teachers/"+tID+".png").Return(nil)
	ts.On("Update", mock.Anything, tID, map[string]interface{}{
		"profile_picture_url": "",
	}).Return(nil)

	err := newTestSvc(cls, ts, ps).RemoveProfilePicture(context.Background(), tID)
	require.NoError(t, err)
	ps.AssertExpectations(t)
	ts.AssertExpectations(t)
}

func TestRemoveProfilePicture_MalformedID_NoStorageAccess(t *testing.T) {
	cls, ts, ps := &mockClassLevelStore{}, &mockTeacherStore{}, &mockPictureStore{}

	err := newTestSvc(cls, ts, ps).RemoveProfilePicture(context.Background(), "not-a-ulid")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	ps.AssertNotCalled(t, "Delete")
}

func TestUploadProfilePicture_RejectsInvalidBase64(t *testing.T) {
	cls, ts, ps := &mockClassLevelStore{}, &mockTeacherStore{}, &mockPictureStore{}

	_, err := newTestSvc(cls, ts, ps).UploadProfilePicture(context.Background(), id.New(), "not base64!!!")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	ps.AssertNotCalled(t, "UploadBase64")
}

func TestUploadProfilePicture_EmptyData(t *testing.T) {
	cls, ts, ps := &mockClassLevelStore{}, &mockTeacherStore{}, &mockPictureStore{}

	_, err := newTestSvc(cls, ts, ps).UploadProfilePicture(context.Background(), id.New(), "")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	ps.AssertNotCalled(t, "UploadBase64")
}
