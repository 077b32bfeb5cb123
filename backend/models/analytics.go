package models

import "gorm.io/gorm"

// PlatformAnalytics is a daily rollup written by the scheduled job.
type PlatformAnalytics struct {
	gorm.Model
	TotalUsers     int     `json:"totalUsers"`
	ActiveUsers    int     `json:"activeUsers"` // users with a login in the last 24h
	TestsTaken     int     `json:"testsTaken"`  // total graded tests across all users
	AvgProficiency float64 `json:"avgProficiency"`
	Date           string  `json:"date" gorm:"uniqueIndex"` // "2006-01-02"
}
