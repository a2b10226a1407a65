package models

import "time"

type BillStatus string

const (
	BillPending  BillStatus = "pending"
	BillPaid     BillStatus = "paid"
	BillOverdue  BillStatus = "overdue"
	BillVerified BillStatus = "verified"
)

// DeletableBillStatuses are the states in which no slip is attached yet.
var DeletableBillStatuses = []BillStatus{BillPending, BillOverdue}

// Bill is the monthly charge for one room and its tenant.
type Bill struct {
	ID                string     `bson:"id" json:"id"`
	RoomID            string     `bson:"roomId" json:"roomId"`
	TenantID          string     `bson:"tenantId" json:"tenantId"`
	Month             int        `bson:"month" json:"month"`
	Year              int        `bson:"year" json:"year"`
	RentAmount        float64    `bson:"rentAmount" json:"rentAmount"`
	WaterUnits        float64    `bson:"waterUnits" json:"waterUnits"`
	WaterAmount       float64    `bson:"waterAmount" json:"waterAmount"`
	ElectricityUnits  float64    `bson:"electricityUnits" json:"electricityUnits"`
	ElectricityAmount float64    `bson:"electricityAmount" json:"electricityAmount"`
	OtherCharges      float64    `bson:"otherCharges" json:"otherCharges"`
	TotalAmount       float64    `bson:"totalAmount" json:"totalAmount"`
	DueDate           time.Time  `bson:"dueDate" json:"dueDate"`
	Status            BillStatus `bson:"status" json:"status"`
	VerifiedAt        *time.Time `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// BillFilter narrows bill listings. Zero values mean "any".
type BillFilter struct {
	TenantID string
	RoomID   string
	Status   BillStatus
	Month    int
	Year     int
}

// GenerateBillRequest is the admin payload for creating a monthly bill.
type GenerateBillRequest struct {
	RoomID           string     `json:"roomId" binding:"required"`
	Month            int        `json:"month" binding:"required,min=1,max=12"`
	Year             int        `json:"year" binding:"required,min=2000,max=2100"`
	RentAmount       *float64   `json:"rentAmount" binding:"omitempty,gte=0"`
	WaterUnits       float64    `json:"waterUnits" binding:"gte=0"`
	ElectricityUnits float64    `json:"electricityUnits" binding:"gte=0"`
	OtherCharges     float64    `json:"otherCharges" binding:"gte=0"`
	DueDate          *time.Time `json:"dueDate"`
}
