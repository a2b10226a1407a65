package room

import (
	"context"
	"errors"
	"fmt"
	"io"

	"rentflow/database"
	"rentflow/models"
	"rentflow/services/storage"
	"rentflow/utils"

	"go.uber.org/zap"
)

func (s *DefaultRoomService) Create(ctx context.Context, req models.RoomRequest) (*models.Room, error) {
	status := req.Status
	if status == "" {
		status = models.RoomAvailable
	}
	room := &models.Room{
		Number:      req.Number,
		Floor:       req.Floor,
		MonthlyRent: req.MonthlyRent,
		Status:      status,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, utils.NewConflict(utils.MsgRoomNumberTaken)
		}
		return nil, fmt.Errorf("Create: %w", err)
	}
	return room, nil
}

func (s *DefaultRoomService) List(ctx context.Context, status models.RoomStatus) ([]models.Room, error) {
	return s.rooms.List(ctx, status)
}

func (s *DefaultRoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFound(utils.MsgRoomNotFound)
		}
		return nil, err
	}
	return room, nil
}

// Update edits room details. Occupancy only changes through assign/unassign.
func (s *DefaultRoomService) Update(ctx context.Context, id string, req models.RoomRequest) (*models.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Number = req.Number
	room.Floor = req.Floor
	room.MonthlyRent = req.MonthlyRent
	if req.Status != "" && room.Status != models.RoomOccupied {
		room.Status = req.Status
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		switch {
		case errors.Is(err, database.ErrConflict):
			return nil, utils.NewConflict(utils.MsgRoomNumberTaken)
		case errors.Is(err, database.ErrNotFound):
			return nil, utils.NewNotFound(utils.MsgRoomNotFound)
		}
		return nil, fmt.Errorf("Update: %w", err)
	}
	return room, nil
}

func (s *DefaultRoomService) Delete(ctx context.Context, id string) error {
	switch err := s.rooms.Delete(ctx, id); {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return utils.NewNotFound(utils.MsgRoomNotFound)
	case errors.Is(err, database.ErrConflict):
		return utils.NewConflict(utils.MsgRoomInUse)
	default:
		return err
	}
}

// AssignTenant occupies an available room with a roomless tenant. Both
// documents change in one transaction or not at all.
func (s *DefaultRoomService) AssignTenant(ctx context.Context, roomID, tenantID string) (*models.Room, error) {
	room, err := s.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	switch room.Status {
	case models.RoomAvailable:
	case models.RoomOccupied:
		return nil, utils.NewBadRequest(utils.MsgRoomOccupied)
	default:
		return nil, utils.NewBadRequest(utils.MsgRoomUnavailable)
	}

	tenant, err := s.users.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFound(utils.MsgUserNotFound)
		}
		return nil, err
	}
	if tenant.Role != models.RoleTenant {
		return nil, utils.NewBadRequest(utils.MsgNotTenant)
	}
	if tenant.RoomID != "" {
		return nil, utils.NewBadRequest(utils.MsgTenantHasRoom)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.rooms.SetTenant(ctx, roomID, tenantID); err != nil {
			if errors.Is(err, database.ErrConflict) {
				return utils.NewBadRequest(utils.MsgRoomOccupied)
			}
			return err
		}
		if err := s.users.SetRoom(ctx, tenantID, roomID); err != nil {
			if errors.Is(err, database.ErrConflict) {
				return utils.NewBadRequest(utils.MsgTenantHasRoom)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tenant assigned", zap.String("roomId", roomID), zap.String("tenantId", tenantID))
	room.Status, room.TenantID, room.UpdatedAt = models.RoomOccupied, tenantID, s.now()
	return room, nil
}

func (s *DefaultRoomService) UnassignTenant(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := s.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != models.RoomOccupied || room.TenantID == "" {
		return nil, utils.NewBadRequest(utils.MsgRoomNotOccupied)
	}
	tenantID := room.TenantID

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.rooms.ClearTenant(ctx, roomID, tenantID); err != nil {
			if errors.Is(err, database.ErrConflict) {
				return utils.NewBadRequest(utils.MsgRoomNotOccupied)
			}
			return err
		}
		err := s.users.ClearRoom(ctx, tenantID, roomID)
		if errors.Is(err, database.ErrConflict) {
			// The tenant already points elsewhere; freeing the room is still right.
			s.logger.Warn("tenant was not linked to room", zap.String("roomId", roomID), zap.String("tenantId", tenantID))
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tenant unassigned", zap.String("roomId", roomID), zap.String("tenantId", tenantID))
	room.Status, room.TenantID, room.UpdatedAt = models.RoomAvailable, "", s.now()
	return room, nil
}

// UploadAgreement stores a private rental agreement and replaces the previous one.
func (s *DefaultRoomService) UploadAgreement(ctx context.Context, roomID string, r io.Reader, filename string) (*models.Room, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("UploadAgreement: storage not configured")
	}
	room, err := s.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}

	file, err := s.storage.UploadPrivateFile(ctx, r, storage.FolderAgreements, filename)
	if err != nil {
		return nil, fmt.Errorf("UploadAgreement: %w", err)
	}
	if err := s.rooms.SetAgreement(ctx, roomID, file); err != nil {
		_ = s.storage.DeleteFile(ctx, file.PublicID)
		return nil, fmt.Errorf("UploadAgreement: %w", err)
	}
	if room.Agreement != nil && room.Agreement.PublicID != file.PublicID {
		if err := s.storage.DeleteFile(ctx, room.Agreement.PublicID); err != nil {
			s.logger.Warn("old agreement not deleted", zap.String("publicId", room.Agreement.PublicID), zap.Error(err))
		}
	}
	room.Agreement = &file
	return room, nil
}

// AgreementURL returns a signed link to the room's agreement.
func (s *DefaultRoomService) AgreementURL(ctx context.Context, roomID string) (string, error) {
	room, err := s.Get(ctx, roomID)
	if err != nil {
		return "", err
	}
	if room.Agreement == nil {
		return "", utils.NewNotFound(utils.MsgFileNotFound)
	}
	if s.storage == nil {
		return "", fmt.Errorf("AgreementURL: storage not configured")
	}
	return s.storage.GetSecureDownloadURL(ctx, room.Agreement.PublicID)
}
