package batch

// Disposition is the outcome of reconciling one record against the store.
type Disposition string

const (
	Created     Disposition = "CREATED"
	Updated     Disposition = "UPDATED"
	Skipped     Disposition = "SKIPPED"
	Reactivated Disposition = "REACTIVATED"
)

// RowError is a record that passed validation but could not be persisted.
type RowError struct {
	RowNumber  int    `json:"rowNumber"`
	NaturalKey string `json:"naturalKeyValue"`
	Error      string `json:"error"`
}

// Invitation is a notification requested by a row, handed to the dispatcher
// once reconciliation has finished.
type Invitation struct {
	RowNumber  int    `json:"rowNumber"`
	EntityID   int64  `json:"entityId"`
	NaturalKey string `json:"naturalKey"`
	Recipient  string `json:"recipient"`
}

// Result is the aggregate of one reconciliation call.
type Result struct {
	Created         int          `json:"created"`
	Updated         int          `json:"updated"`
	Skipped         int          `json:"skipped"`
	Reactivated     int          `json:"reactivated"`
	InvitationsSent int          `json:"invitationsSent"`
	Errors          []RowError   `json:"errors"`
	Invitations     []Invitation `json:"-"`
}

// Processed is the number of records that received a disposition.
func (r Result) Processed() int {
	return r.Created + r.Updated + r.Skipped + r.Reactivated
}

// Count returns the counter for d.
func (r Result) Count(d Disposition) int {
	switch d {
	case Created:
		return r.Created
	case Updated:
		return r.Updated
	case Skipped:
		return r.Skipped
	case Reactivated:
		return r.Reactivated
	}
	return 0
}

// ResultBuilder accumulates one Result. A builder belongs to a single call and
// must not be shared.
type ResultBuilder struct {
	res Result
}

func (b *ResultBuilder) Record(d Disposition) {
	switch d {
	case Created:
		b.res.Created++
	case Updated:
		b.res.Updated++
	case Skipped:
		b.res.Skipped++
	case Reactivated:
		b.res.Reactivated++
	}
}

func (b *ResultBuilder) Fail(rowNumber int, naturalKey string, err error) {
	b.res.Errors = append(b.res.Errors, RowError{RowNumber: rowNumber, NaturalKey: naturalKey, Error: err.Error()})
}

func (b *ResultBuilder) Invite(inv Invitation) {
	b.res.InvitationsSent++
	b.res.Invitations = append(b.res.Invitations, inv)
}

// Result returns a copy of the accumulated state.
func (b *ResultBuilder) Result() Result {
	out := b.res
	out.Errors = append([]RowError{}, b.res.Errors...)
	out.Invitations = append([]Invitation(nil), b.res.Invitations...)
	return out
}
