package payment

import "time"

type PaymentStatus string

const (
	StatusUnpaid PaymentStatus = "unpaid"
	StatusPaid   PaymentStatus = "paid"
)

// DefaultMonthlyAmount is charged when a nursery has no price configured.
const DefaultMonthlyAmount = 100.00

type Payment struct {
	ID             string        `gorm:"type:uuid;primaryKey"`
	EnrollmentID   string        `gorm:"type:uuid;uniqueIndex;not null"`
	ParentID       string        `gorm:"type:uuid;index;not null"`
	NurseryID      string        `gorm:"type:uuid;index;not null"`
	ChildID        string        `gorm:"type:uuid;not null"`
	Amount         float64       `gorm:"not null"`
	PaymentStatus  PaymentStatus `gorm:"type:text;not null;default:'unpaid'"`
	Description    *string
	PaymentDate    *time.Time
	CardLastDigits *string
	TransactionID  *string
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// Detail is a payment joined with the nursery owner, who receives the
// payment notification.
type Detail struct {
	Payment
	OwnerID string
}

type ProcessInput struct {
	EnrollmentID string
	CardNumber   string
	ExpiryDate   string
	CVV          string
}

type ProcessResult struct {
	Payment       Payment
	TransactionID string
}

// StatusRow is one payment in a parent's pending/paid overview.
type StatusRow struct {
	ID           string
	EnrollmentID string
	Amount       float64
	Status       PaymentStatus
	PaymentDate  *time.Time
	ChildName    string
	NurseryID    string
	NurseryName  string
}

type ParentStatus struct {
	Pending []StatusRow
	Paid    []StatusRow
}

type HistoryRow struct {
	ID             string
	Amount         float64
	Status         PaymentStatus
	PaymentDate    *time.Time
	CardLastDigits *string
	ChildName      string
	NurseryName    string
}

// Stats aggregates an owner's payments across pending and active enrollments.
type Stats struct {
	TotalEnrollments  int64
	TotalExpected     float64
	TotalReceived     float64
	TotalPending      float64
	PaidCount         int64
	UnpaidCount       int64
	PaymentPercentage float64
}
