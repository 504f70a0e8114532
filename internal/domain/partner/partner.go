// Package partner declares how supplier partners are read from a batch upload
// and which of their fields a re-import may change.
package partner

import (
	"time"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

const Entity = "partners"

const (
	ColInternalID       = "PARTNER_INTERNAL_ID"
	ColName             = "PARTNER_NAME"
	ColDUNS             = "PARTNER_DUNS"
	ColSAPID            = "PARTNER_SAP_ID"
	ColPOCFirstName     = "PARTNER_POC_FIRST_NAME"
	ColPOCLastName      = "PARTNER_POC_LAST_NAME"
	ColPOCTitle         = "PARTNER_POC_TITLE"
	ColPOCPhone         = "PARTNER_POC_PHONE_NUMBER"
	ColPOCEmail         = "PARTNER_POC_EMAIL_ADDRESS"
	ColAddressOne       = "PARTNER_ADDRESS_ONE"
	ColAddressTwo       = "PARTNER_ADDRESS_TWO"
	ColCity             = "PARTNER_CITY"
	ColState            = "PARTNER_STATE"
	ColZipCode          = "PARTNER_ZIPCODE"
	ColCountry          = "PARTNER_COUNTRY"
	ColFax              = "PARTNER_CONTACT_FAX"
	ColProvince         = "PARTNER_PROVINCE"
	ColROFirstName      = "RO_FIRST_NAME"
	ColROLastName       = "RO_LAST_NAME"
	ColROEmail          = "RO_EMAIL"
	ColDueDate          = "DUE_DATE"
	ColGroupDescription = "PARTNER_GROUP_DESCRIPTION"
	ColPreselected      = "PRESELECTED"
)

// Columns is the contractual header vocabulary of a partner upload.
var Columns = []string{
	ColInternalID, ColName, ColDUNS, ColSAPID,
	ColPOCFirstName, ColPOCLastName, ColPOCTitle, ColPOCPhone, ColPOCEmail,
	ColAddressOne, ColAddressTwo, ColCity, ColState, ColZipCode, ColCountry,
	ColFax, ColProvince,
	ColROFirstName, ColROLastName, ColROEmail,
	ColDueDate, ColGroupDescription, ColPreselected,
}

const (
	CodeNameRequired       = "ERR-PART-001"
	CodeInternalIDRequired = "ERR-PART-002"
	CodeDuplicateID        = "ERR-PART-003"
	CodeInvalidPOCEmail    = "ERR-PART-004"
	CodeInvalidROEmail     = "ERR-PART-005"
	CodeInvalidDUNS        = "ERR-PART-006"
	CodeInvalidDueDate     = "ERR-PART-007"
	CodeInvalidPreselected = "ERR-PART-008"
	CodeROEmailRequired    = "ERR-PART-009"
	CodeUnknownPhone       = "WARN-PART-001"
)

// Partner is the business projection of one partner row. The natural key is
// the enterprise plus InternalID.
type Partner struct {
	InternalID       string
	Name             string
	DUNS             string
	SAPID            string
	POCFirstName     string
	POCLastName      string
	POCTitle         string
	POCPhone         string
	POCEmail         string
	AddressOne       string
	AddressTwo       string
	City             string
	State            string
	ZipCode          string
	Country          string
	Fax              string
	Province         string
	ROFirstName      string
	ROLastName       string
	ROEmail          string
	DueDate          *time.Time
	GroupDescription string
	Preselected      bool
}

// Schema returns the parsing rules for partner uploads. phoneRegion is the
// region assumed for phone numbers written without a country code.
func Schema(phoneRegion string) batch.Schema[Partner] {
	return batch.Schema[Partner]{
		Entity:  Entity,
		Columns: Columns,
		Required: []batch.Required{
			{Column: ColInternalID, Code: CodeInternalIDRequired},
			{Column: ColName, Code: CodeNameRequired},
		},
		Checks: []batch.Check{
			batch.Email(ColPOCEmail, CodeInvalidPOCEmail),
			batch.Email(ColROEmail, CodeInvalidROEmail),
			batch.Digits(ColDUNS, CodeInvalidDUNS, 9),
			batch.Date(ColDueDate, CodeInvalidDueDate),
			batch.Flag(ColPreselected, CodeInvalidPreselected),
			batch.RequiredWhen(ColROEmail, CodeROEmailRequired, batch.FlagSet(ColPreselected), "PRESELECTED is Y"),
			batch.Phone(ColPOCPhone, CodeUnknownPhone, phoneRegion),
		},
		Key:       func(r batch.Row) string { return r.Get(ColInternalID) },
		Duplicate: batch.DuplicatePolicy{Code: CodeDuplicateID, Label: ColInternalID, Blocking: true},
		Build:     build,
	}
}

func build(r batch.Row) Partner {
	return Partner{
		InternalID:       r.Get(ColInternalID),
		Name:             r.Get(ColName),
		DUNS:             r.Get(ColDUNS),
		SAPID:            r.Get(ColSAPID),
		POCFirstName:     r.Get(ColPOCFirstName),
		POCLastName:      r.Get(ColPOCLastName),
		POCTitle:         r.Get(ColPOCTitle),
		POCPhone:         r.Get(ColPOCPhone),
		POCEmail:         r.Get(ColPOCEmail),
		AddressOne:       r.Get(ColAddressOne),
		AddressTwo:       r.Get(ColAddressTwo),
		City:             r.Get(ColCity),
		State:            r.Get(ColState),
		ZipCode:          r.Get(ColZipCode),
		Country:          r.Get(ColCountry),
		Fax:              r.Get(ColFax),
		Province:         r.Get(ColProvince),
		ROFirstName:      r.Get(ColROFirstName),
		ROLastName:       r.Get(ColROLastName),
		ROEmail:          r.Get(ColROEmail),
		DueDate:          batch.DateValue(r.Get(ColDueDate)),
		GroupDescription: r.Get(ColGroupDescription),
		Preselected:      batch.FlagValue(r.Get(ColPreselected), false),
	}
}

// Fields are the mutable business fields compared on re-import. Column names
// match the partners table.
var Fields = []batch.Field[Partner]{
	{Column: "name", Value: func(p Partner) any { return p.Name }},
	{Column: "duns", Value: func(p Partner) any { return p.DUNS }},
	{Column: "sap_id", Value: func(p Partner) any { return p.SAPID }},
	{Column: "poc_first_name", Value: func(p Partner) any { return p.POCFirstName }},
	{Column: "poc_last_name", Value: func(p Partner) any { return p.POCLastName }},
	{Column: "poc_title", Value: func(p Partner) any { return p.POCTitle }},
	{Column: "poc_phone", Value: func(p Partner) any { return p.POCPhone }},
	{Column: "poc_email", Value: func(p Partner) any { return p.POCEmail }, Fold: true},
	{Column: "address_one", Value: func(p Partner) any { return p.AddressOne }},
	{Column: "address_two", Value: func(p Partner) any { return p.AddressTwo }},
	{Column: "city", Value: func(p Partner) any { return p.City }},
	{Column: "state", Value: func(p Partner) any { return p.State }},
	{Column: "zip_code", Value: func(p Partner) any { return p.ZipCode }},
	{Column: "country", Value: func(p Partner) any { return p.Country }},
	{Column: "fax", Value: func(p Partner) any { return p.Fax }},
	{Column: "province", Value: func(p Partner) any { return p.Province }},
	{Column: "ro_first_name", Value: func(p Partner) any { return p.ROFirstName }},
	{Column: "ro_last_name", Value: func(p Partner) any { return p.ROLastName }},
	{Column: "ro_email", Value: func(p Partner) any { return p.ROEmail }, Fold: true},
	{Column: "due_date", Value: func(p Partner) any { return p.DueDate }},
	{Column: "group_description", Value: func(p Partner) any { return p.GroupDescription }},
	{Column: "preselected", Value: func(p Partner) any { return p.Preselected }},
}
