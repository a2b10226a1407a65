package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentflow/database"
	maintenanceRepo "rentflow/database/repository/maintenance"
	userRepo "rentflow/database/repository/user"
	"rentflow/models"
	"rentflow/services/notification"
	"rentflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MaintenanceService interface {
	Create(ctx context.Context, tenantID string, req models.CreateMaintenanceRequest) (*models.Maintenance, error)
	List(ctx context.Context, filter models.MaintenanceFilter) ([]models.Maintenance, error)
	Get(ctx context.Context, id, userID string, role models.Role) (*models.Maintenance, error)
	UpdateStatus(ctx context.Context, id string, req models.UpdateMaintenanceStatusRequest) (*models.Maintenance, error)
}

// transitions lists the allowed next states of each non-terminal state.
var transitions = map[models.MaintenanceStatus][]models.MaintenanceStatus{
	models.MaintenancePending:    {models.MaintenanceInProgress, models.MaintenanceCancelled},
	models.MaintenanceInProgress: {models.MaintenanceCompleted, models.MaintenanceCancelled},
}

var statusLabels = map[models.MaintenanceStatus]string{
	models.MaintenancePending:    "รอดำเนินการ",
	models.MaintenanceInProgress: "กำลังดำเนินการ",
	models.MaintenanceCompleted:  "เสร็จสิ้น",
	models.MaintenanceCancelled:  "ยกเลิก",
}

// CanTransition reports whether a ticket may move from one status to another.
func CanTransition(from, to models.MaintenanceStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type DefaultMaintenanceService struct {
	tickets  maintenanceRepo.MaintenanceRepository
	users    userRepo.UserRepository
	notifier notification.NotificationService
	logger   *zap.Logger
	now      func() time.Time
}

func NewDefaultMaintenanceService(
	tickets maintenanceRepo.MaintenanceRepository,
	users userRepo.UserRepository,
	notifier notification.NotificationService,
	logger *zap.Logger,
) (*DefaultMaintenanceService, error) {
	if tickets == nil || users == nil {
		return nil, fmt.Errorf("maintenance service initialization error: repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultMaintenanceService{tickets: tickets, users: users, notifier: notifier, logger: logger, now: time.Now}, nil
}

func (s *DefaultMaintenanceService) Create(ctx context.Context, tenantID string, req models.CreateMaintenanceRequest) (*models.Maintenance, error) {
	tenant, err := s.users.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFound(utils.MsgUserNotFound)
		}
		return nil, err
	}
	if tenant.RoomID == "" {
		return nil, utils.NewBadRequest(utils.MsgNoRoom)
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	now := s.now()
	ticket := &models.Maintenance{
		ID:          uuid.New().String(),
		RoomID:      tenant.RoomID,
		TenantID:    tenant.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Priority:    priority,
		Status:      models.MaintenancePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	if s.notifier != nil {
		data := models.NotificationData{TicketTitle: ticket.Title, Status: statusLabels[ticket.Status], TenantName: tenant.Name}
		if _, err := s.notifier.NotifyRole(ctx, models.RoleAdmin, models.NotifMaintenanceUpdate, "", data); err != nil {
			s.logger.Error("maintenance notice failed", zap.String("ticketId", ticket.ID), zap.Error(err))
		}
	}
	return ticket, nil
}

func (s *DefaultMaintenanceService) List(ctx context.Context, filter models.MaintenanceFilter) ([]models.Maintenance, error) {
	return s.tickets.List(ctx, filter)
}

func (s *DefaultMaintenanceService) Get(ctx context.Context, id, userID string, role models.Role) (*models.Maintenance, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFound(utils.MsgTicketNotFound)
		}
		return nil, err
	}
	if role != models.RoleAdmin && ticket.TenantID != userID {
		return nil, utils.NewNotFound(utils.MsgTicketNotFound)
	}
	return ticket, nil
}

func (s *DefaultMaintenanceService) UpdateStatus(ctx context.Context, id string, req models.UpdateMaintenanceStatusRequest) (*models.Maintenance, error) {
	ticket, err := s.Get(ctx, id, "", models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if !CanTransition(ticket.Status, req.Status) {
		return nil, utils.NewConflict(utils.MsgInvalidTransition)
	}

	now := s.now()
	note := strings.TrimSpace(req.AdminNote)
	if err := s.tickets.UpdateStatus(ctx, id, ticket.Status, req.Status, note, now); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, utils.NewConflict(utils.MsgInvalidTransition)
		}
		return nil, fmt.Errorf("UpdateStatus: %w", err)
	}

	ticket.Status, ticket.UpdatedAt = req.Status, now
	if note != "" {
		ticket.AdminNote = note
	}
	if req.Status == models.MaintenanceCompleted {
		ticket.CompletedAt = &now
	}

	if s.notifier != nil {
		data := models.NotificationData{TicketTitle: ticket.Title, Status: statusLabels[ticket.Status], Reason: note}
		if _, err := s.notifier.Notify(ctx, ticket.TenantID, models.NotifMaintenanceUpdate, "", data); err != nil {
			s.logger.Error("maintenance notice failed", zap.String("ticketId", ticket.ID), zap.Error(err))
		}
	}
	s.logger.Info("maintenance status changed", zap.String("ticketId", id), zap.String("status", string(req.Status)))
	return ticket, nil
}
