package models

// SNIRecord maps a caller-chosen name to a hostname. The name doubles as the
// record key and is immutable after creation; updates may only change Host.
type SNIRecord struct {
	Name string `gorm:"primaryKey;size:128" json:"id"`
	Host string `gorm:"size:255;not null" json:"host"`
}
