package models

import "time"

type NotificationType string

const (
	NotifPaymentReminder   NotificationType = "payment_reminder"
	NotifPaymentVerified   NotificationType = "payment_verified"
	NotifPaymentRejected   NotificationType = "payment_rejected"
	NotifPaymentOverdue    NotificationType = "payment_overdue"
	NotifBillGenerated     NotificationType = "bill_generated"
	NotifPaymentSubmitted  NotificationType = "payment_submitted"
	NotifMaintenanceUpdate NotificationType = "maintenance_update"
)

// NotificationTypes lists every type, in display order.
var NotificationTypes = []NotificationType{
	NotifPaymentReminder,
	NotifPaymentVerified,
	NotifPaymentRejected,
	NotifPaymentOverdue,
	NotifBillGenerated,
	NotifPaymentSubmitted,
	NotifMaintenanceUpdate,
}

func (t NotificationType) Valid() bool {
	for _, known := range NotificationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Notification is an in-app notification record.
type Notification struct {
	ID      string           `bson:"id" json:"id"`
	UserID  string           `bson:"userId" json:"userId"`
	Type    NotificationType `bson:"type" json:"type"`
	Title   string           `bson:"title" json:"title"`
	Message string           `bson:"message" json:"message"`
	BillID  string           `bson:"billId,omitempty" json:"billId,omitempty"`
	Read    bool             `bson:"read" json:"read"`
	SentAt  time.Time        `bson:"sentAt" json:"sentAt"`
	ReadAt  *time.Time       `bson:"readAt,omitempty" json:"readAt,omitempty"`
}

// NotificationTemplate overrides the built-in title/message for one type.
// Both fields are text/template strings.
type NotificationTemplate struct {
	Type      NotificationType `bson:"type" json:"type"`
	Title     string           `bson:"title" json:"title" binding:"required"`
	Message   string           `bson:"message" json:"message" binding:"required"`
	UpdatedAt time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// NotificationData is the template context for rendering.
type NotificationData struct {
	BillID      string
	RoomNumber  string
	Month       int
	Year        int
	Amount      float64
	DueDate     string
	DaysLeft    int
	Reason      string
	TenantName  string
	TicketTitle string
	Status      string
}
