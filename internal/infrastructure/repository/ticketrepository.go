package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"ticketapp/internal/domain/ticket"
	vo "ticketapp/internal/domain/ticket/valueobjects"
	"ticketapp/internal/infrastructure/persistence/mappers"
	"ticketapp/internal/infrastructure/persistence/models"
	"ticketapp/internal/shared/db"
	"ticketapp/internal/shared/logger"
)

// ticketColumns selects a ticket row with nullable text flattened to "" and
// the assignee's username resolved through an outer join.
const ticketColumns = `t.ticket_id, t.ticket_type, t.subject, t.summary,
	COALESCE(t.prerequisites, '') AS prerequisites,
	COALESCE(t.steps_to_replicate, '') AS steps_to_replicate,
	COALESCE(t.outcome, '') AS outcome,
	COALESCE(t.expected_outcome, '') AS expected_outcome,
	t.status, t.user_id, t.parent_id,
	COALESCE(t.created_by, '') AS created_by,
	t.created_at,
	COALESCE(u.username, '') AS assignee_name`

const newestFirst = "t.created_at DESC, t.ticket_id DESC"

type statusCount struct {
	Status string
	Count  int64
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketRepository(db *gorm.DB, logger logger.Interface) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

var _ ticket.Repository = (*TicketRepository)(nil)

func (r *TicketRepository) selectTickets(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).
		Table("tickets AS t").
		Select(ticketColumns).
		Joins("LEFT JOIN users u ON u.id = t.user_id")
}

func (r *TicketRepository) Create(ctx context.Context, fields ticket.Fields, createdBy string) (uint, error) {
	if fields.Status == "" {
		fields.Status = vo.StatusNew
	}
	if fields.Type == "" {
		fields.Type = vo.TypeBug
	}

	model := r.mapper.ToModel(fields, createdBy)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return 0, fmt.Errorf("failed to create ticket: %w", err)
	}

	r.logger.Infow("ticket created", "ticket_id", model.ID, "type", model.TicketType, "created_by", createdBy)
	return model.ID, nil
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, error) {
	query := r.selectTickets(ctx)

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, s.String())
		}
		query = query.Where("t.status IN ?", statuses)
	}

	// SQLite LIKE folds ASCII case only; other letters match exactly.
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		query = query.Where(
			`(t.subject LIKE ? ESCAPE '\' OR t.summary LIKE ? ESCAPE '\' OR t.expected_outcome LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}

	var rows []*models.TicketRow
	if err := query.Order(newestFirst).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return r.mapper.ToDomainList(rows), nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var rows []*models.TicketRow

	if err := r.selectTickets(ctx).
		Where("t.ticket_id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return r.mapper.ToDomain(rows[0]), nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id uint, status vo.TicketStatus) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("ticket_id = ?", id).
		Update("status", status.String())

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket status: %w", result.Error)
	}

	r.logger.Infow("ticket status updated", "ticket_id", id, "status", status)
	return nil
}

func (r *TicketRepository) Update(ctx context.Context, id uint, fields ticket.Fields) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("ticket_id = ?", id).
		Updates(r.mapper.ToColumns(fields))

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when the id does not exist; callers check existence first.

	r.logger.Infow("ticket updated", "ticket_id", id)
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", id).
		Delete(&models.TicketModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete ticket: %w", result.Error)
	}

	r.logger.Infow("ticket deleted", "ticket_id", id, "rows", result.RowsAffected)
	return nil
}

func (r *TicketRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("ticket_id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ticket existence: %w", err)
	}

	return count > 0, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	var rows []statusCount

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by status: %w", err)
	}

	counts := make(map[vo.TicketStatus]int64, len(rows))
	for _, row := range rows {
		counts[vo.TicketStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// CountCreatedSince compares through julianday so rows written by older
// releases with a different timestamp text format still count.
func (r *TicketRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("julianday(created_at) >= julianday(?)", since.UTC().Format("2006-01-02 15:04:05")).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recent tickets: %w", err)
	}

	return count, nil
}

func (r *TicketRepository) ListByAssignee(ctx context.Context, assigneeID uint) ([]*ticket.Ticket, error) {
	var rows []*models.TicketRow

	if err := r.selectTickets(ctx).
		Where("t.user_id = ?", assigneeID).
		Order(newestFirst).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list assigned tickets: %w", err)
	}

	return r.mapper.ToDomainList(rows), nil
}
