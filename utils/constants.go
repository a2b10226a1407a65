package utils

// User-facing messages. The UI is Thai-only.
const (
	MsgInternal          = "เกิดข้อผิดพลาดภายในระบบ กรุณาลองใหม่อีกครั้ง"
	MsgInvalidRequest    = "ข้อมูลไม่ถูกต้อง"
	MsgUnauthorized      = "กรุณาเข้าสู่ระบบ"
	MsgForbidden         = "คุณไม่มีสิทธิ์ดำเนินการนี้"
	MsgTooManyRequests   = "มีการเรียกใช้งานมากเกินไป กรุณาลองใหม่ภายหลัง"
	MsgBillNotFound      = "ไม่พบบิล"
	MsgPaymentNotFound   = "ไม่พบข้อมูลการชำระเงิน"
	MsgRoomNotFound      = "ไม่พบห้อง"
	MsgUserNotFound      = "ไม่พบผู้ใช้"
	MsgTicketNotFound    = "ไม่พบรายการแจ้งซ่อม"
	MsgNotifNotFound     = "ไม่พบการแจ้งเตือน"
	MsgTemplateNotFound  = "ไม่พบประเภทการแจ้งเตือน"
	MsgInvalidTemplate   = "รูปแบบข้อความแจ้งเตือนไม่ถูกต้อง"
	MsgInvalidCredential = "อีเมลหรือรหัสผ่านไม่ถูกต้อง"
	MsgEmailTaken        = "อีเมลนี้ถูกใช้งานแล้ว"

	// Payments.
	MsgPaymentProcessed = "รายการชำระเงินนี้ได้รับการตรวจสอบแล้ว"
	MsgPaymentPending   = "มีสลิปของบิลนี้รอการตรวจสอบอยู่แล้ว"
	MsgReasonRequired   = "กรุณาระบุเหตุผลในการปฏิเสธ"
	MsgBillNotPayable   = "บิลนี้ไม่อยู่ในสถานะที่ชำระเงินได้"
	MsgSlipRequired     = "กรุณาแนบสลิปการโอนเงิน"
	MsgInvalidQR        = "QR Code ไม่ถูกต้อง"
	MsgInvalidAmount    = "จำนวนเงินต้องอยู่ระหว่าง 0 ถึง 10,000,000"
	MsgInvalidSlipDate  = "รูปแบบวันที่ต้องเป็น DD/MM/YYYY หรือ DD-MM-YYYY"
	MsgInvalidSlipTime  = "รูปแบบเวลาต้องเป็น HH:MM หรือ HH:MM:SS"
	MsgAmountMismatch   = "ยอดเงินในสลิปไม่ตรงกับยอดบิล"
	MsgAmountUnknown    = "ไม่สามารถอ่านยอดเงินจากสลิปได้ กรุณาตรวจสอบด้วยตนเอง"

	// Bills.
	MsgBillExists      = "มีบิลของห้องนี้ในเดือนดังกล่าวแล้ว"
	MsgBillLocked      = "ไม่สามารถลบบิลที่ส่งสลิปหรือยืนยันการชำระแล้ว"
	MsgRoomNotOccupied = "ห้องนี้ยังไม่มีผู้เช่า"

	// Rooms.
	MsgRoomOccupied    = "ห้องนี้มีผู้เช่าแล้ว"
	MsgRoomUnavailable = "ห้องนี้ไม่พร้อมให้เช่า"
	MsgRoomNumberTaken = "หมายเลขห้องนี้มีอยู่แล้ว"
	MsgRoomInUse       = "ไม่สามารถลบห้องที่มีผู้เช่า"
	MsgTenantHasRoom   = "ผู้เช่ารายนี้มีห้องพักแล้ว"
	MsgNotTenant       = "ผู้ใช้นี้ไม่ใช่ผู้เช่า"
	MsgFileRequired    = "กรุณาแนบไฟล์"
	MsgFileNotFound    = "ไม่พบไฟล์"

	// Maintenance.
	MsgNoRoom            = "คุณยังไม่มีห้องพัก"
	MsgInvalidTransition = "ไม่สามารถเปลี่ยนสถานะรายการนี้ได้"
)
