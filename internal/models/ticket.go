package models

import (
	"database/sql"
	"time"
)

// TicketStatus enumerates the persisted state codes of tincidents.state.
// Legacy revisions of the reporting stack disagreed on which integer meant
// "resolved"; this table is the one canonical mapping and no other code may
// compare raw integers.
type TicketStatus int

const (
	StatusOpen       TicketStatus = 1
	StatusInProgress TicketStatus = 2
	StatusResolved   TicketStatus = 3
	StatusClosed     TicketStatus = 4
	StatusUnassigned TicketStatus = 5
)

// Resolved reports whether the status counts as a completed ticket.
// Closed tickets went through resolution, so they count too.
func (s TicketStatus) Resolved() bool {
	return s == StatusResolved || s == StatusClosed
}

// String returns the mnemonic for logs and exports.
func (s TicketStatus) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusInProgress:
		return "in_progress"
	case StatusResolved:
		return "resolved"
	case StatusClosed:
		return "closed"
	case StatusUnassigned:
		return "unassigned"
	default:
		return "unknown"
	}
}

// TicketRecord is the typed projection of a ticket joined with its technician
// and sub-category, as read by the aggregation queries. Unassigned tickets
// carry a NULL technician.
type TicketRecord struct {
	ID             int64          `db:"id"`
	AgentID        sql.NullInt64  `db:"agent_id"`
	AgentFirstName sql.NullString `db:"agent_firstname"`
	AgentLastName  sql.NullString `db:"agent_lastname"`
	SubCategory    sql.NullString `db:"sub_category"`
	Status         TicketStatus   `db:"state"`
	CreatedAt      time.Time      `db:"date_create"`
	ResolvedAt     sql.NullTime   `db:"date_res"`
}

// Assigned reports whether the ticket is attached to a technician at all.
func (t TicketRecord) Assigned() bool {
	return t.AgentID.Valid && t.Status != StatusUnassigned
}

// AgentName joins the technician name fields, empty when unassigned.
func (t TicketRecord) AgentName() string {
	if !t.AgentID.Valid {
		return ""
	}
	name := t.AgentFirstName.String
	if t.AgentLastName.String != "" {
		if name != "" {
			name += " "
		}
		name += t.AgentLastName.String
	}
	return name
}

// ResolutionValid reports whether resolution data is usable for duration
// computations: the ticket is resolved and date_res is not before date_create.
func (t TicketRecord) ResolutionValid() bool {
	return t.Status.Resolved() && t.ResolvedAt.Valid && !t.ResolvedAt.Time.Before(t.CreatedAt)
}
