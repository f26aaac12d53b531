package mappers

import (
	"ticketapp/internal/domain/ticket"
	vo "ticketapp/internal/domain/ticket/valueobjects"
	"ticketapp/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket records and persistence models.
type TicketMapper interface {
	// ToDomain converts a joined ticket row to a domain record.
	ToDomain(row *models.TicketRow) *ticket.Ticket

	// ToDomainList converts a slice of joined rows.
	ToDomainList(rows []*models.TicketRow) []*ticket.Ticket

	// ToModel builds an insertable model from the mutable fields.
	ToModel(fields ticket.Fields, createdBy string) *models.TicketModel

	// ToColumns returns every mutable column keyed by column name. Nil
	// pointers map to SQL NULL so a full update can clear references.
	ToColumns(fields ticket.Fields) map[string]interface{}
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToDomain(row *models.TicketRow) *ticket.Ticket {
	if row == nil {
		return nil
	}

	return &ticket.Ticket{
		ID: row.ID,
		Fields: ticket.Fields{
			Type:             vo.TicketType(row.TicketType),
			Subject:          row.Subject,
			Summary:          row.Summary,
			Prerequisites:    row.Prerequisites,
			StepsToReplicate: row.StepsToReplicate,
			Outcome:          row.Outcome,
			ExpectedOutcome:  row.ExpectedOutcome,
			Status:           vo.TicketStatus(row.Status),
			AssigneeID:       row.UserID,
			ParentID:         row.ParentID,
		},
		CreatedBy:    row.CreatedBy,
		CreatedAt:    row.CreatedAt.UTC(),
		AssigneeName: row.AssigneeName,
	}
}

func (m *TicketMapperImpl) ToDomainList(rows []*models.TicketRow) []*ticket.Ticket {
	tickets := make([]*ticket.Ticket, 0, len(rows))
	for _, row := range rows {
		tickets = append(tickets, m.ToDomain(row))
	}
	return tickets
}

func (m *TicketMapperImpl) ToModel(fields ticket.Fields, createdBy string) *models.TicketModel {
	return &models.TicketModel{
		TicketType:       fields.Type.String(),
		Subject:          fields.Subject,
		Summary:          fields.Summary,
		Prerequisites:    fields.Prerequisites,
		StepsToReplicate: fields.StepsToReplicate,
		Outcome:          fields.Outcome,
		ExpectedOutcome:  fields.ExpectedOutcome,
		Status:           fields.Status.String(),
		UserID:           fields.AssigneeID,
		ParentID:         fields.ParentID,
		CreatedBy:        createdBy,
	}
}

func (m *TicketMapperImpl) ToColumns(fields ticket.Fields) map[string]interface{} {
	return map[string]interface{}{
		"ticket_type":        fields.Type.String(),
		"subject":            fields.Subject,
		"summary":            fields.Summary,
		"prerequisites":      fields.Prerequisites,
		"steps_to_replicate": fields.StepsToReplicate,
		"outcome":            fields.Outcome,
		"expected_outcome":   fields.ExpectedOutcome,
		"status":             fields.Status.String(),
		"user_id":            nullableID(fields.AssigneeID),
		"parent_id":          nullableID(fields.ParentID),
	}
}

func nullableID(id *uint) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
