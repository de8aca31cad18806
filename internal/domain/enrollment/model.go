package enrollment

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Enrollment struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	ChildID   string    `gorm:"type:uuid;index;not null"`
	NurseryID string    `gorm:"type:uuid;index;not null"`
	Status    Status    `gorm:"type:text;not null;default:'pending'"`
	StartDate time.Time `gorm:"type:date;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type Child struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	ParentID     string    `gorm:"type:uuid;index;not null"`
	Name         string    `gorm:"not null"`
	Age          int       `gorm:"not null"`
	DateOfBirth  time.Time `gorm:"type:date;not null"`
	MedicalNotes *string
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Child) TableName() string { return "children" }

// Detail is the joined view a state transition works on: the enrollment row
// plus the names needed to build the parent notification.
type Detail struct {
	ID          string
	NurseryID   string
	Status      Status
	ParentID    string
	ChildName   string
	NurseryName string
}

type ParentInfo struct {
	ID    string
	Name  string
	Phone string
	Email string
}

type ChildInfo struct {
	ID        string
	Name      string
	BirthDate time.Time
	Age       int
}

type NurseryInfo struct {
	ID             string
	Name           string
	Description    string
	Address        string
	City           string
	PostalCode     string
	Phone          string
	Email          string
	Hours          string
	PricePerMonth  float64
	TotalSpots     int
	AvailableSpots int
	AgeRange       string
	Rating         float64
	ReviewCount    int
	PhotoURL       string
}

// Summary is one enrollment joined with its child, parent and (optionally)
// nursery. Nursery is nil for per-nursery listings where the caller already
// knows the nursery.
type Summary struct {
	ID        string
	StartDate time.Time
	Status    Status
	CreatedAt time.Time
	Child     ChildInfo
	Parent    ParentInfo
	Nursery   *NurseryInfo
}

type CreateInput struct {
	ChildName   string
	BirthDate   time.Time
	NurseryID   string
	StartDate   time.Time
	ParentID    string
	ParentName  string
	ParentPhone string
	Notes       string
}

type CreateResult struct {
	EnrollmentID string
	ChildID      string
	ParentID     string
	NurseryID    string
	CreatedAt    time.Time
}

// AgeFromBirthDate mirrors the age the rest of the system stores on the
// child row: whole years elapsed, counting 365.25 days per year.
func AgeFromBirthDate(birthDate, now time.Time) int {
	if !birthDate.Before(now) {
		return 0
	}
	const year = time.Duration(365.25 * 24 * float64(time.Hour))
	return int(now.Sub(birthDate) / year)
}
