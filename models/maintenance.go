package models

import "time"

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s MaintenanceStatus) Terminal() bool {
	return s == MaintenanceCompleted || s == MaintenanceCancelled
}

type Maintenance struct {
	ID          string            `bson:"id" json:"id"`
	RoomID      string            `bson:"roomId" json:"roomId"`
	TenantID    string            `bson:"tenantId" json:"tenantId"`
	Title       string            `bson:"title" json:"title"`
	Description string            `bson:"description" json:"description"`
	Priority    string            `bson:"priority" json:"priority"`
	Status      MaintenanceStatus `bson:"status" json:"status"`
	AdminNote   string            `bson:"adminNote,omitempty" json:"adminNote,omitempty"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt" json:"updatedAt"`
	CompletedAt *time.Time        `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

type CreateMaintenanceRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type UpdateMaintenanceStatusRequest struct {
	Status    MaintenanceStatus `json:"status" binding:"required,oneof=pending in_progress completed cancelled"`
	AdminNote string            `json:"adminNote"`
}

// MaintenanceFilter narrows ticket listings. Zero values mean "any".
type MaintenanceFilter struct {
	TenantID string
	RoomID   string
	Status   MaintenanceStatus
}
