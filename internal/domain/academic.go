package domain

import "time"

// ClassLevel is an academic grouping (e.g. "Primary 3A") referencing its
// assigned teachers. PK: class_level_id.
type ClassLevel struct {
	ClassLevelID string   `json:"id" dynamodbav:"class_level_id"`
	Name         string   `json:"name" dynamodbav:"name"`
	Section      string   `json:"section" dynamodbav:"section"`
	Subclass     string   `json:"subclass" dynamodbav:"subclass"`
	TeacherIDs   []string `json:"teacherIds" dynamodbav:"teacher_ids"`
}

// Teacher is a staff record. PK: teacher_id.
type Teacher struct {
	TeacherID         string    `json:"id" dynamodbav:"teacher_id"`
	FirstName         string    `json:"firstName" dynamodbav:"first_name"`
	LastName          string    `json:"lastName" dynamodbav:"last_name"`
	Role              string    `json:"role" dynamodbav:"role"`
	ProfilePictureURL string    `json:"profilePictureUrl" dynamodbav:"profile_picture_url"`
	CreatedAt         time.Time `json:"createdAt" dynamodbav:"created_at"`
}

// TeacherView is the per-class-level projection served by the review lookup.
type TeacherView struct {
	ID                string `json:"_id"`
	TeacherID         string `json:"teacherId"`
	Name              string `json:"name"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Role              string `json:"role"`
	Program           string `json:"program"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// AcademicYear is a read-only period entity owned by another subsystem.
// PK: academic_year_id.
type AcademicYear struct {
	AcademicYearID string `json:"academicYearId" dynamodbav:"academic_year_id"`
	Name           string `json:"name" dynamodbav:"name"`
	IsCurrent      bool   `json:"isCurrent" dynamodbav:"is_current"`
}

// AcademicYearView is the list projection.
type AcademicYearView struct {
	AcademicYearID string `json:"academicYearId"`
	Name           string `json:"name"`
}

// Period is an academic term within a year. PK: period_id.
type Period struct {
	PeriodID       string `json:"periodId" dynamodbav:"period_id"`
	AcademicYearID string `json:"academicYearId" dynamodbav:"academic_year_id"`
	Name           string `json:"name" dynamodbav:"name"`
}
