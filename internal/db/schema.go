package db

import "time"

// Schema records exist only for AutoMigrate; repositories scan into
// models.User and models.Question with pgx.

type userRecord struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"type:text;not null;uniqueIndex:idx_users_name"`
	PasswordHash string    `gorm:"type:text;not null"`
	IsAdmin      bool      `gorm:"not null;default:false"`
	IsExpert     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (userRecord) TableName() string { return "users" }

type questionRecord struct {
	ID           int64     `gorm:"primaryKey"`
	QuestionText string    `gorm:"type:text;not null"`
	AskerID      int64     `gorm:"not null;index:idx_questions_asker"`
	ExpertID     int64     `gorm:"not null;index:idx_questions_expert"`
	AnswerText   *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	AnsweredAt   *time.Time

	Asker  userRecord `gorm:"foreignKey:AskerID;constraint:OnDelete:RESTRICT"`
	Expert userRecord `gorm:"foreignKey:ExpertID;constraint:OnDelete:RESTRICT"`
}

func (questionRecord) TableName() string { return "questions" }
