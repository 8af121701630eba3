package models

import (
	"database/sql"
	"time"
)

type Job struct {
	ID          int64          `db:"id"`
	CustomerID  int64          `db:"customer_id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Budget      float64        `db:"budget"`
	Location    sql.NullString `db:"location"`
	Status      string         `db:"status"`
	WorkerID    sql.NullInt64  `db:"worker_id"`
	CreatedAt   time.Time      `db:"created_at"`
}

// OpenJob is a jobs row joined with the owning customer's contact details,
// as returned by the open-jobs listing.
type OpenJob struct {
	ID            int64          `db:"id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Budget        float64        `db:"budget"`
	Location      sql.NullString `db:"location"`
	CreatedAt     time.Time      `db:"created_at"`
	CustomerName  string         `db:"customer_name"`
	CustomerPhone string         `db:"customer_phone"`
	CustomerPic   []byte         `db:"customer_pic"`
}
