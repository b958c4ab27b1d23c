package assignment

import "time"

type MonthAssignment struct {
	ID                    string  `gorm:"primaryKey"`
	GroupID               string  `gorm:"not null;uniqueIndex:idx_assignments_group_month_year"`
	Month                 int     `gorm:"not null;uniqueIndex:idx_assignments_group_month_year"`
	Year                  int     `gorm:"not null;uniqueIndex:idx_assignments_group_month_year"`
	HostMemberID          *string
	PreferredDeliveryDate *time.Time `gorm:"type:date"`
	CreatedAt             time.Time  `gorm:"autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime"`

	Payments []Payment `gorm:"foreignKey:MonthAssignmentID"`
}

type Payment struct {
	ID                string `gorm:"primaryKey"`
	MemberID          string `gorm:"not null;uniqueIndex:idx_payments_member_assignment"`
	MonthAssignmentID string `gorm:"not null;uniqueIndex:idx_payments_member_assignment"`
	Paid              bool   `gorm:"not null;default:false"`
	PaidAt            *time.Time
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

// RosterMember is the slice of the members table the reconciler needs,
// ordered by creation time.
type RosterMember struct {
	ID   string
	Name string
}

// PaymentStatus is the flat per-member view of one assignment's ledger.
// Names are resolved at read time, never stored.
type PaymentStatus struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	Paid       bool   `json:"paid"`
}

type View struct {
	ID                    string          `json:"id"`
	Month                 int             `json:"month"`
	Year                  int             `json:"year"`
	HostMemberID          string          `json:"host_member_id"`
	HostMemberName        string          `json:"host_member_name"`
	PreferredDeliveryDate *string         `json:"preferred_delivery_date"`
	Payments              []PaymentStatus `json:"payments"`
}

// ManualEntry is one row of an externally drawn rotation being recorded
// after the fact.
type ManualEntry struct {
	MemberName string
	Month      int
}
