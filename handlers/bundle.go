package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Auth          *AuthHandler
	Bills         *BillHandler
	Payments      *PaymentHandler
	Notifications *NotificationHandler
	Maintenance   *MaintenanceHandler
	Admin         *AdminHandler
}
