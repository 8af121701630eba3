package models

import (
	"time"
)

// Document columns hold either the raw upload bytes (blob storage) or a
// filename/URL reference (disk and cloudinary storage). A nil slice means
// the document has not been provided or has been cleared.
type Customer struct {
	ID         int64     `db:"id"`
	FullName   string    `db:"full_name"`
	Cnic       string    `db:"cnic"`
	Phone      string    `db:"phone"`
	City       string    `db:"city"`
	CnicFront  []byte    `db:"cnic_front"`
	CnicBack   []byte    `db:"cnic_back"`
	ProfilePic []byte    `db:"profile_pic"`
	CreatedAt  time.Time `db:"created_at"`
}
