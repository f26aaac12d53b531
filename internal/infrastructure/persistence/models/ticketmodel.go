package models

import (
	"time"

	"ticketapp/internal/shared/constants"
)

// TicketModel mirrors the tickets table. The primary key column is
// ticket_id; user_id holds the assignee.
type TicketModel struct {
	ID               uint   `gorm:"column:ticket_id;primaryKey"`
	TicketType       string `gorm:"column:ticket_type;not null"`
	Subject          string `gorm:"not null"`
	Summary          string `gorm:"not null"`
	Prerequisites    string
	StepsToReplicate string
	Outcome          string
	ExpectedOutcome  string
	Status           string `gorm:"not null"`
	UserID           *uint
	ParentID         *uint
	CreatedBy        string
	CreatedAt        time.Time `gorm:"not null"`
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

// TicketRow is a ticket read together with its assignee's username.
type TicketRow struct {
	TicketModel
	AssigneeName string
}
