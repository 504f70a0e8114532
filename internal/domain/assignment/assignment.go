// Package assignment declares how questionnaire assignments (a partner paired
// with a touchpoint) are read from a batch upload.
package assignment

import (
	"time"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

const Entity = "assignments"

const (
	ColPartnerInternalID = "PARTNER_INTERNAL_ID"
	ColTouchpointCode    = "TOUCHPOINT_CODE"
	ColDueDate           = "DUE_DATE"
	ColSendInvite        = "SEND_INVITE"
	ColROEmail           = "RO_EMAIL"
)

var Columns = []string{ColPartnerInternalID, ColTouchpointCode, ColDueDate, ColSendInvite, ColROEmail}

const (
	CodePartnerRequired    = "ERR-ASGN-001"
	CodeTouchpointRequired = "ERR-ASGN-002"
	CodeDueDateRequired    = "ERR-ASGN-003"
	CodeInvalidDueDate     = "ERR-ASGN-004"
	CodeInvalidSendInvite  = "ERR-ASGN-005"
	CodeInvalidROEmail     = "ERR-ASGN-006"
	CodeROEmailRequired    = "ERR-ASGN-007"
	CodeDuplicatePair      = "WARN-ASGN-001"
)

// Assignment is one partner/touchpoint pairing. PartnerID and TouchpointID
// are zero until the references have been resolved against the store; the
// natural key is the resolved pair.
type Assignment struct {
	PartnerInternalID string
	TouchpointCode    string
	PartnerID         int64
	TouchpointID      int64
	DueDate           time.Time
	SendInvite        bool
	ROEmail           string
}

func Schema() batch.Schema[Assignment] {
	return batch.Schema[Assignment]{
		Entity:  Entity,
		Columns: Columns,
		Required: []batch.Required{
			{Column: ColPartnerInternalID, Code: CodePartnerRequired},
			{Column: ColTouchpointCode, Code: CodeTouchpointRequired},
			{Column: ColDueDate, Code: CodeDueDateRequired},
		},
		Checks: []batch.Check{
			batch.Date(ColDueDate, CodeInvalidDueDate),
			batch.Flag(ColSendInvite, CodeInvalidSendInvite),
			batch.Email(ColROEmail, CodeInvalidROEmail),
			batch.RequiredWhen(ColROEmail, CodeROEmailRequired, batch.FlagSet(ColSendInvite), "SEND_INVITE is Y"),
		},
		Key:       pairKey,
		Duplicate: batch.DuplicatePolicy{Code: CodeDuplicatePair, Label: ColPartnerInternalID + "+" + ColTouchpointCode},
		Build:     build,
	}
}

// pairKey is empty unless both halves are present, so rows already failing the
// required checks do not also count as duplicates.
func pairKey(r batch.Row) string {
	return batch.JoinKey(r.Get(ColPartnerInternalID), r.Get(ColTouchpointCode))
}

func build(r batch.Row) Assignment {
	var due time.Time
	if d := batch.DateValue(r.Get(ColDueDate)); d != nil {
		due = *d
	}
	return Assignment{
		PartnerInternalID: r.Get(ColPartnerInternalID),
		TouchpointCode:    r.Get(ColTouchpointCode),
		DueDate:           due,
		SendInvite:        batch.FlagValue(r.Get(ColSendInvite), false),
		ROEmail:           r.Get(ColROEmail),
	}
}

var Fields = []batch.Field[Assignment]{
	{Column: "due_date", Value: func(a Assignment) any { return a.DueDate }},
	{Column: "ro_email", Value: func(a Assignment) any { return a.ROEmail }, Fold: true},
}

// Invite returns the invitation recipient when the row asked for one.
func Invite(a Assignment) (string, bool) {
	if !a.SendInvite || a.ROEmail == "" {
		return "", false
	}
	return a.ROEmail, true
}
