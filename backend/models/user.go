package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:student"` // student, teacher
	ClassPeriod  string
	School       string
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}
