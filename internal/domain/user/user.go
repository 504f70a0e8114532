// Package user declares how enterprise users are read from a batch upload
// and which of their fields a re-import may change.
package user

import (
	"strings"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

const Entity = "users"

const (
	ColUserID            = "USER_ID"
	ColFirstName         = "USER_FIRST_NAME"
	ColLastName          = "USER_LAST_NAME"
	ColEmail             = "USER_EMAIL"
	ColPhone             = "USER_PHONE"
	ColRole              = "USER_ROLE"
	ColSiteCode          = "SITE_CODE"
	ColGroupCode         = "GROUP_CODE"
	ColPartnerTypeAccess = "PARTNERTYPE_ACCESS"
	ColTitle             = "USER_TITLE"
	ColDepartment        = "DEPARTMENT"
	ColManagerEmail      = "MANAGER_EMAIL"
	ColSSOID             = "SSO_ID"
	ColIsActive          = "IS_ACTIVE"
	ColNotes             = "NOTES"
)

var Columns = []string{
	ColUserID, ColFirstName, ColLastName, ColEmail, ColPhone, ColRole,
	ColSiteCode, ColGroupCode, ColPartnerTypeAccess, ColTitle, ColDepartment,
	ColManagerEmail, ColSSOID, ColIsActive, ColNotes,
}

const (
	CodeUserIDRequired      = "ERR-USER-001"
	CodeFirstNameRequired   = "ERR-USER-002"
	CodeLastNameRequired    = "ERR-USER-003"
	CodeEmailRequired       = "ERR-USER-004"
	CodeInvalidEmail        = "ERR-USER-005"
	CodeRoleRequired        = "ERR-USER-006"
	CodeUnknownRole         = "ERR-USER-007"
	CodeInvalidManagerEmail = "ERR-USER-008"
	CodeInvalidActiveFlag   = "ERR-USER-009"
	CodeDuplicateUserID     = "ERR-USER-010"
	CodeUnrecognizedPhone   = "WARN-USER-001"
)

// Roles accepted in USER_ROLE.
var Roles = []string{"ADMIN", "MANAGER", "APPROVER", "REVIEWER", "USER"}

// User is the business projection of one user row. The natural key is the
// enterprise plus UserID.
//
// Enabled carries IS_ACTIVE from the sheet. It is a business field and is
// unrelated to the soft-delete state that drives reactivation.
type User struct {
	UserID            string
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	Role              string
	SiteCode          string
	GroupCode         string
	PartnerTypeAccess string
	Title             string
	Department        string
	ManagerEmail      string
	SSOID             string
	Enabled           bool
	Notes             string
}

func Schema(phoneRegion string) batch.Schema[User] {
	return batch.Schema[User]{
		Entity:  Entity,
		Columns: Columns,
		Required: []batch.Required{
			{Column: ColUserID, Code: CodeUserIDRequired},
			{Column: ColFirstName, Code: CodeFirstNameRequired},
			{Column: ColLastName, Code: CodeLastNameRequired},
			{Column: ColEmail, Code: CodeEmailRequired},
			{Column: ColRole, Code: CodeRoleRequired},
		},
		Checks: []batch.Check{
			batch.Email(ColEmail, CodeInvalidEmail),
			batch.OneOf(ColRole, CodeUnknownRole, Roles...),
			batch.Email(ColManagerEmail, CodeInvalidManagerEmail),
			batch.Flag(ColIsActive, CodeInvalidActiveFlag),
			batch.Phone(ColPhone, CodeUnrecognizedPhone, phoneRegion),
		},
		Key:       func(r batch.Row) string { return r.Get(ColUserID) },
		Duplicate: batch.DuplicatePolicy{Code: CodeDuplicateUserID, Label: ColUserID, Blocking: true},
		Build:     build,
	}
}

func build(r batch.Row) User {
	return User{
		UserID:            r.Get(ColUserID),
		FirstName:         r.Get(ColFirstName),
		LastName:          r.Get(ColLastName),
		Email:             r.Get(ColEmail),
		Phone:             r.Get(ColPhone),
		Role:              strings.ToUpper(r.Get(ColRole)),
		SiteCode:          r.Get(ColSiteCode),
		GroupCode:         r.Get(ColGroupCode),
		PartnerTypeAccess: r.Get(ColPartnerTypeAccess),
		Title:             r.Get(ColTitle),
		Department:        r.Get(ColDepartment),
		ManagerEmail:      r.Get(ColManagerEmail),
		SSOID:             r.Get(ColSSOID),
		Enabled:           batch.FlagValue(r.Get(ColIsActive), true),
		Notes:             r.Get(ColNotes),
	}
}

var Fields = []batch.Field[User]{
	{Column: "first_name", Value: func(u User) any { return u.FirstName }},
	{Column: "last_name", Value: func(u User) any { return u.LastName }},
	{Column: "email", Value: func(u User) any { return u.Email }, Fold: true},
	{Column: "phone", Value: func(u User) any { return u.Phone }},
	{Column: "role", Value: func(u User) any { return u.Role }, Fold: true},
	{Column: "site_code", Value: func(u User) any { return u.SiteCode }},
	{Column: "group_code", Value: func(u User) any { return u.GroupCode }},
	{Column: "partner_type_access", Value: func(u User) any { return u.PartnerTypeAccess }},
	{Column: "title", Value: func(u User) any { return u.Title }},
	{Column: "department", Value: func(u User) any { return u.Department }},
	{Column: "manager_email", Value: func(u User) any { return u.ManagerEmail }, Fold: true},
	{Column: "sso_id", Value: func(u User) any { return u.SSOID }},
	{Column: "enabled", Value: func(u User) any { return u.Enabled }},
	{Column: "notes", Value: func(u User) any { return u.Notes }},
}

