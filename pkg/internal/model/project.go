package model

import (
	"time"

	"gorm.io/gorm"
)

// Project 工程项目模型.
type Project struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Name      string     `gorm:"size:512;index"     json:"name"`
	Code      string     `gorm:"size:128;index"     json:"code"`
	Location  string     `gorm:"size:512"           json:"location"`
	Status    string     `gorm:"size:64;index"      json:"status"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
