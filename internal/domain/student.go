package domain

import "time"

// Student is a pupil record. PK: student_id. GSI: section-index.
type Student struct {
	StudentID    string           `json:"id" dynamodbav:"student_id"`
	FirstName    string           `json:"firstName" dynamodbav:"first_name"`
	LastName     string           `json:"lastName" dynamodbav:"last_name"`
	ClassLevelID string           `json:"classLevelId" dynamodbav:"class_level_id"`
	Section      string           `json:"section" dynamodbav:"section"`
	ClassName    string           `json:"className" dynamodbav:"class_name"`
	Subclass     string           `json:"subclass" dynamodbav:"subclass"`
	Comments     []StudentComment `json:"comments,omitempty" dynamodbav:"comments"`
	CreatedAt    time.Time        `json:"createdAt" dynamodbav:"created_at"`
}

// StudentComment is a teacher remark attached to a student record.
type StudentComment struct {
	TeacherID string    `json:"teacherId" dynamodbav:"teacher_id"`
	Comment   string    `json:"comment" dynamodbav:"comment"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
}

// StudentQuery carries the query-string scope parameters every student
// endpoint requires.
type StudentQuery struct {
	TeacherID      string
	AcademicYearID string
	AcademicTermID string
}

type PostCommentRequest struct {
	StudentID    string `json:"studentId" validate:"required"`
	ClassLevelID string `json:"classLevelId" validate:"required"`
	Comment      string `json:"comment" validate:"required"`
}
