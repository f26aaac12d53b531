package ticket

import (
	"ticketapp/internal/application/ticket/dto"
	"ticketapp/internal/application/ticket/usecases"
)

func toForm(req *dto.TicketRequest) usecases.TicketForm {
	return usecases.TicketForm{
		Type:             req.TicketType,
		Subject:          req.Subject,
		Summary:          req.Summary,
		Prerequisites:    req.Prerequisites,
		StepsToReplicate: req.StepsToReplicate,
		Outcome:          req.Outcome,
		ExpectedOutcome:  req.ExpectedOutcome,
		AssigneeID:       req.AssigneeID,
		ParentID:         req.ParentID,
	}
}
