package models

import "database/sql"

// Agent is a support technician from the legacy tusers table. Agents are
// managed elsewhere; this API only reads them.
type Agent struct {
	ID        int64          `db:"id" json:"id"`
	FirstName string         `db:"firstname" json:"prenom"`
	LastName  string         `db:"lastname" json:"nom"`
	Role      string         `db:"role" json:"role"`
	Function  string         `db:"function" json:"poste"`
	Phone     sql.NullString `db:"phone" json:"-"`
	Email     string         `db:"mail" json:"email"`
}

// FullName joins first and last name for display.
func (a Agent) FullName() string {
	if a.FirstName == "" {
		return a.LastName
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// AgentCredentials carries the stored password hash for login checks.
type AgentCredentials struct {
	Agent
	PasswordHash string `db:"password"`
}

// AgentTicketStats is the all-time resolved/assigned tally per agent.
type AgentTicketStats struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Function string `db:"function"`
	Total    int    `db:"total"`
	Resolved int    `db:"resolved"`
}
