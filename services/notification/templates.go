package notification

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"

	"rentflow/database"
	"rentflow/models"
	"rentflow/utils"
)

var defaultTemplates = map[models.NotificationType]models.NotificationTemplate{
	models.NotifPaymentReminder: {
		Title:   "แจ้งเตือนชำระค่าเช่า",
		Message: "บิลห้อง {{.RoomNumber}} เดือน {{.Month}}/{{.Year}} ยอด {{money .Amount}} บาท ครบกำหนดชำระในอีก {{.DaysLeft}} วัน ({{.DueDate}})",
	},
	models.NotifPaymentVerified: {
		Title:   "ยืนยันการชำระเงินแล้ว",
		Message: "การชำระเงินบิลเดือน {{.Month}}/{{.Year}} ยอด {{money .Amount}} บาท ได้รับการยืนยันแล้ว",
	},
	models.NotifPaymentRejected: {
		Title:   "การชำระเงินไม่ผ่านการตรวจสอบ",
		Message: "สลิปสำหรับบิลเดือน {{.Month}}/{{.Year}} ถูกปฏิเสธ เหตุผล: {{.Reason}}",
	},
	models.NotifPaymentOverdue: {
		Title:   "ค่าเช่าเกินกำหนดชำระ",
		Message: "บิลห้อง {{.RoomNumber}} เดือน {{.Month}}/{{.Year}} ยอด {{money .Amount}} บาท เกินกำหนดชำระตั้งแต่ {{.DueDate}}",
	},
	models.NotifBillGenerated: {
		Title:   "บิลค่าเช่าใหม่",
		Message: "บิลห้อง {{.RoomNumber}} เดือน {{.Month}}/{{.Year}} ยอด {{money .Amount}} บาท กำหนดชำระ {{.DueDate}}",
	},
	models.NotifPaymentSubmitted: {
		Title:   "มีสลิปรอตรวจสอบ",
		Message: "{{.TenantName}} ส่งสลิปบิลเดือน {{.Month}}/{{.Year}} ยอด {{money .Amount}} บาท",
	},
	models.NotifMaintenanceUpdate: {
		Title:   "อัปเดตงานแจ้งซ่อม",
		Message: "งานแจ้งซ่อม \"{{.TicketTitle}}\" เปลี่ยนสถานะเป็น {{.Status}}",
	},
}

var templateFuncs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}

// DefaultTemplate returns the built-in texts for t.
func DefaultTemplate(t models.NotificationType) (models.NotificationTemplate, bool) {
	tpl, ok := defaultTemplates[t]
	tpl.Type = t
	return tpl, ok
}

// resolveTemplate prefers a stored override and falls back to the built-in one.
func (s *DefaultNotificationService) resolveTemplate(ctx context.Context, t models.NotificationType) (models.NotificationTemplate, error) {
	if s.templates != nil {
		stored, err := s.templates.Get(ctx, t)
		if err == nil {
			return *stored, nil
		}
		if !errors.Is(err, database.ErrNotFound) {
			return models.NotificationTemplate{}, err
		}
	}
	tpl, ok := DefaultTemplate(t)
	if !ok {
		return models.NotificationTemplate{}, fmt.Errorf("no template for notification type %q", t)
	}
	return tpl, nil
}

func (s *DefaultNotificationService) render(ctx context.Context, t models.NotificationType, data models.NotificationData) (string, string, error) {
	tpl, err := s.resolveTemplate(ctx, t)
	if err != nil {
		return "", "", err
	}
	title, err := execute(tpl.Title, data)
	if err != nil {
		return "", "", err
	}
	message, err := execute(tpl.Message, data)
	if err != nil {
		return "", "", err
	}
	return title, message, nil
}

func execute(text string, data models.NotificationData) (string, error) {
	tmpl, err := parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

func parse(text string) (*template.Template, error) {
	tmpl, err := template.New("notification").Funcs(templateFuncs).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return tmpl, nil
}

func (s *DefaultNotificationService) GetTemplate(ctx context.Context, t models.NotificationType) (*models.NotificationTemplate, error) {
	if !t.Valid() {
		return nil, utils.NewNotFound(utils.MsgTemplateNotFound)
	}
	tpl, err := s.resolveTemplate(ctx, t)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// SaveTemplate stores an override after checking both texts parse and render.
func (s *DefaultNotificationService) SaveTemplate(ctx context.Context, tpl *models.NotificationTemplate) error {
	if !tpl.Type.Valid() {
		return utils.NewNotFound(utils.MsgTemplateNotFound)
	}
	if s.templates == nil {
		return fmt.Errorf("SaveTemplate: template repository not configured")
	}
	for _, text := range []string{tpl.Title, tpl.Message} {
		if _, err := execute(text, models.NotificationData{}); err != nil {
			return utils.NewBadRequest(utils.MsgInvalidTemplate).Wrap(err)
		}
	}
	tpl.UpdatedAt = s.now()
	return s.templates.Upsert(ctx, tpl)
}

// DueDateLayout is how dates appear in notification texts.
const DueDateLayout = "02/01/2006"

// BillData builds the template context for bill related notifications.
func BillData(bill *models.Bill, roomNumber string, loc *time.Location) models.NotificationData {
	if loc == nil {
		loc = time.UTC
	}
	return models.NotificationData{
		BillID:     bill.ID,
		RoomNumber: roomNumber,
		Month:      bill.Month,
		Year:       bill.Year,
		Amount:     bill.TotalAmount,
		DueDate:    bill.DueDate.In(loc).Format(DueDateLayout),
	}
}
