package member

import "time"

type Member struct {
	ID        string    `gorm:"primaryKey"`
	GroupID   string    `gorm:"not null;uniqueIndex:idx_members_group_name"`
	Name      string    `gorm:"size:50;not null;uniqueIndex:idx_members_group_name"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
