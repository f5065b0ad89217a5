package http

import (
	"github.com/crystal-land-academy/api/internal/infrastructure/dynamo"
	jwtinfra "github.com/crystal-land-academy/api/internal/infrastructure/jwt"
	s3infra "github.com/crystal-land-academy/api/internal/infrastructure/s3"
	"github.com/crystal-land-academy/api/internal/infrastructure/smtp"
	"github.com/crystal-land-academy/api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	PinRepo          *dynamo.PinRepo
	NotificationRepo *dynamo.NotificationRepo
	ClassLevelRepo   *dynamo.ClassLevelRepo
	TeacherRepo      *dynamo.TeacherRepo
	StudentRepo      *dynamo.StudentRepo
	AcademicYearRepo *dynamo.AcademicYearRepo
	UserRepo         *dynamo.UserRepo
	PictureStore     *s3infra.Store
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender
	JWTProvider      *jwtinfra.Provider
}
