package models

import "time"

type User struct {
	ID                int64  `gorm:"primaryKey"`
	EnterpriseID      int64  `gorm:"column:enterprise_id;not null;uniqueIndex:ux_users_enterprise_user_id,priority:1"`
	UserID            string `gorm:"column:user_id;size:100;not null;uniqueIndex:ux_users_enterprise_user_id,priority:2"`
	FirstName         string `gorm:"column:first_name;size:120;not null"`
	LastName          string `gorm:"column:last_name;size:120;not null"`
	Email             string `gorm:"column:email;size:320;not null"`
	Phone             string `gorm:"column:phone;size:32"`
	Role              string `gorm:"column:role;size:32;not null"`
	SiteCode          string `gorm:"column:site_code;size:64"`
	GroupCode         string `gorm:"column:group_code;size:64"`
	PartnerTypeAccess string `gorm:"column:partner_type_access;size:255"`
	Title             string `gorm:"column:title;size:120"`
	Department        string `gorm:"column:department;size:120"`
	ManagerEmail      string `gorm:"column:manager_email;size:320"`
	SSOID             string `gorm:"column:sso_id;size:255"`
	Enabled           bool   `gorm:"column:enabled;not null"`
	Notes             string `gorm:"column:notes;type:text"`
	Active            bool   `gorm:"column:active;not null"`
	CreatedBy         int64  `gorm:"column:created_by"`
	UpdatedBy         int64  `gorm:"column:updated_by"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (User) TableName() string {
	return "users"
}
