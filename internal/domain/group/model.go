package group

import "time"

const (
	DefaultGroupID   = "default-group"
	DefaultGroupName = "Altın Günü Grubu"
)

type Group struct {
	ID            string    `gorm:"primaryKey"`
	Name          string    `gorm:"not null"`
	ShareCode     *string   `gorm:"size:6;uniqueIndex"`
	IsDefault     bool      `gorm:"not null;default:false"`
	RotationDrawn bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// Summary is a listing row with dependent counts resolved at read time.
type Summary struct {
	Group
	MemberCount     int64
	AssignmentCount int64
}
