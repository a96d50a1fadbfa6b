package student

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID uuid.UUID `gorm:"type:uuid;not null;index"`

	FullName string `gorm:"type:varchar(120);not null"`
	Email    string `gorm:"type:varchar(255);index:uq_student_email,unique"`

	Grade         string `gorm:"type:varchar(40);not null;index"`
	GradeCategory string `gorm:"type:varchar(20);not null;index"`
	ClassName     string `gorm:"type:varchar(60)"`

	EnrolledAt time.Time      `gorm:"type:date;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
