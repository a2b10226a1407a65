package models

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

type Room struct {
	ID          string      `bson:"id" json:"id"`
	Number      string      `bson:"number" json:"number"`
	Floor       int         `bson:"floor" json:"floor"`
	MonthlyRent float64     `bson:"monthlyRent" json:"monthlyRent"`
	Status      RoomStatus  `bson:"status" json:"status"`
	TenantID    string      `bson:"tenantId,omitempty" json:"tenantId,omitempty"`
	Agreement   *StoredFile `bson:"agreement,omitempty" json:"agreement,omitempty"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}

type RoomRequest struct {
	Number      string     `json:"number" binding:"required"`
	Floor       int        `json:"floor" binding:"gte=0"`
	MonthlyRent float64    `json:"monthlyRent" binding:"required,gt=0"`
	Status      RoomStatus `json:"status" binding:"omitempty,oneof=available maintenance"`
}

type AssignTenantRequest struct {
	TenantID string `json:"tenantId" binding:"required"`
}
