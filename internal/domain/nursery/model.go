package nursery

import "time"

type Nursery struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	OwnerID        string `gorm:"type:uuid;index;not null"`
	Name           string `gorm:"not null"`
	Description    string
	Address        string
	City           string
	PostalCode     string
	Phone          string
	Email          string
	Hours          string
	PricePerMonth  *float64
	TotalSpots     int `gorm:"not null"`
	AvailableSpots int `gorm:"not null"`
	AgeRange       string
	Rating         float64
	ReviewCount    int
	PhotoURL       string
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Nursery) TableName() string { return "nurseries" }

// Availability summarizes a nursery's capacity for the enrollment flow.
type Availability struct {
	NurseryID      string
	TotalSpots     int
	AvailableSpots int
	EnrolledCount  int
	PricePerMonth  *float64
}
