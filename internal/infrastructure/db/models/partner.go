package models

import "time"

type Partner struct {
	ID               int64      `gorm:"primaryKey"`
	EnterpriseID     int64      `gorm:"column:enterprise_id;not null;uniqueIndex:ux_partners_enterprise_internal_id,priority:1"`
	InternalID       string     `gorm:"column:internal_id;size:100;not null;uniqueIndex:ux_partners_enterprise_internal_id,priority:2"`
	Name             string     `gorm:"column:name;size:255;not null"`
	DUNS             string     `gorm:"column:duns;size:9"`
	SAPID            string     `gorm:"column:sap_id;size:100"`
	POCFirstName     string     `gorm:"column:poc_first_name;size:120"`
	POCLastName      string     `gorm:"column:poc_last_name;size:120"`
	POCTitle         string     `gorm:"column:poc_title;size:120"`
	POCPhone         string     `gorm:"column:poc_phone;size:32"`
	POCEmail         string     `gorm:"column:poc_email;size:320"`
	AddressOne       string     `gorm:"column:address_one;size:255"`
	AddressTwo       string     `gorm:"column:address_two;size:255"`
	City             string     `gorm:"column:city;size:120"`
	State            string     `gorm:"column:state;size:120"`
	ZipCode          string     `gorm:"column:zip_code;size:20"`
	Country          string     `gorm:"column:country;size:120"`
	Fax              string     `gorm:"column:fax;size:32"`
	Province         string     `gorm:"column:province;size:120"`
	ROFirstName      string     `gorm:"column:ro_first_name;size:120"`
	ROLastName       string     `gorm:"column:ro_last_name;size:120"`
	ROEmail          string     `gorm:"column:ro_email;size:320"`
	DueDate          *time.Time `gorm:"column:due_date;type:date"`
	GroupDescription string     `gorm:"column:group_description;size:255"`
	Preselected      bool       `gorm:"column:preselected;not null"`
	Active           bool       `gorm:"column:active;not null"`
	CreatedBy        int64      `gorm:"column:created_by"`
	UpdatedBy        int64      `gorm:"column:updated_by"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Partner) TableName() string {
	return "partners"
}
