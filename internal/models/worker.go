package models

import (
	"database/sql"
	"time"
)

type Worker struct {
	ID                  int64          `db:"id"`
	FullName            string         `db:"full_name"`
	Cnic                string         `db:"cnic"`
	Phone               string         `db:"phone"`
	City                string         `db:"city"`
	Skill               string         `db:"skill"`
	AvailableHours      string         `db:"available_hours"`
	About               sql.NullString `db:"about"`
	CnicFront           []byte         `db:"cnic_front"`
	CnicBack            []byte         `db:"cnic_back"`
	ProfilePic          []byte         `db:"profile_pic"`
	WorkCert            []byte         `db:"work_cert"`
	License             []byte         `db:"license"`
	LicenseBack         []byte         `db:"license_back"`
	WorkerFormCompleted bool           `db:"worker_form_completed"`
	CreatedAt           time.Time      `db:"created_at"`
}
