package usecases

import (
	"context"
	"fmt"
	"sort"

	"ticketapp/internal/application/ticket/dto"
	"ticketapp/internal/domain/permission"
	"ticketapp/internal/domain/ticket"
	vo "ticketapp/internal/domain/ticket/valueobjects"
	"ticketapp/internal/shared/biztime"
	"ticketapp/internal/shared/constants"
	"ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
)

type GetDashboardUseCase struct {
	ticketRepo ticket.Repository
	policy     TicketPolicy
	logger     logger.Interface
}

func NewGetDashboardUseCase(ticketRepo ticket.Repository, policy TicketPolicy, logger logger.Interface) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		ticketRepo: ticketRepo,
		policy:     policy,
		logger:     logger,
	}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context, actor permission.Actor) (*dto.DashboardDTO, error) {
	if !uc.policy.CanView(actor) {
		return nil, errors.NewForbiddenError("you are not allowed to view tickets")
	}

	result, err := uc.build(ctx, actor)
	if err != nil {
		uc.logger.Errorw("failed to build dashboard", "user_id", actor.ID, "error", err)
		return nil, errors.NewInternalError("failed to build dashboard")
	}
	return result, nil
}

func (uc *GetDashboardUseCase) build(ctx context.Context, actor permission.Actor) (*dto.DashboardDTO, error) {
	counts, err := uc.ticketRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	since := biztime.DaysAgoUTC(constants.DashboardNewTicketDays)
	recent, err := uc.ticketRepo.CountCreatedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("count created since: %w", err)
	}

	mine, err := uc.ticketRepo.ListByAssignee(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list by assignee: %w", err)
	}

	result := &dto.DashboardDTO{
		CreatedLastWeek: recent,
		AssignedToMe:    int64(len(mine)),
		ByStatus:        statusBreakdown(counts),
		MyTickets:       dto.ToTicketListItemDTOs(mine),
	}
	for status, n := range counts {
		result.Total += n
		if status.IsOpenLike() {
			result.OpenLike += n
		}
	}
	return result, nil
}

// statusBreakdown lists the workflow statuses in order, then any stored
// status outside the vocabulary alphabetically.
func statusBreakdown(counts map[vo.TicketStatus]int64) []dto.StatusCountDTO {
	out := make([]dto.StatusCountDTO, 0, len(counts))
	for _, status := range vo.AllStatuses() {
		if n, ok := counts[status]; ok {
			out = append(out, dto.StatusCountDTO{Status: status.String(), Count: n})
		}
	}

	var unknown []string
	for status := range counts {
		if !status.IsValid() {
			unknown = append(unknown, status.String())
		}
	}
	sort.Strings(unknown)
	for _, s := range unknown {
		out = append(out, dto.StatusCountDTO{Status: s, Count: counts[vo.TicketStatus(s)]})
	}
	return out
}
