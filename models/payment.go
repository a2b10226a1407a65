package models

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentRejected PaymentStatus = "rejected"
)

// OCRData is what the slip reader extracted from the image text.
// Amount is nil when nothing could be read.
type OCRData struct {
	Amount      *float64 `bson:"amount,omitempty" json:"amount,omitempty" binding:"omitempty,gte=0,lte=10000000"`
	Date        string   `bson:"date,omitempty" json:"date,omitempty" binding:"omitempty,slipdate"`
	Time        string   `bson:"time,omitempty" json:"time,omitempty" binding:"omitempty,sliptime"`
	FromAccount string   `bson:"fromAccount,omitempty" json:"fromAccount,omitempty"`
	ToAccount   string   `bson:"toAccount,omitempty" json:"toAccount,omitempty"`
	Reference   string   `bson:"reference,omitempty" json:"reference,omitempty"`
}

// QRData is what the slip reader decoded from the slip's QR code.
type QRData struct {
	Amount    *float64 `bson:"amount,omitempty" json:"amount,omitempty" binding:"omitempty,gte=0,lte=10000000"`
	Reference string   `bson:"reference,omitempty" json:"reference,omitempty"`
	Raw       string   `bson:"raw,omitempty" json:"raw,omitempty"`
}

// StoredFile points at an object in object storage.
type StoredFile struct {
	PublicID string `bson:"publicId" json:"publicId"`
	URL      string `bson:"url" json:"url"`
}

// Payment is a tenant-submitted slip for one bill.
type Payment struct {
	ID              string        `bson:"id" json:"id"`
	BillID          string        `bson:"billId" json:"billId"`
	TenantID        string        `bson:"tenantId" json:"tenantId"`
	SlipImage       StoredFile    `bson:"slipImage" json:"slipImage"`
	OCRData         *OCRData      `bson:"ocrData,omitempty" json:"ocrData,omitempty"`
	QRData          *QRData       `bson:"qrData,omitempty" json:"qrData,omitempty"`
	Status          PaymentStatus `bson:"status" json:"status"`
	RejectionReason string        `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	VerifiedBy      string        `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time    `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// AmountSource tells where the effective amount of a slip came from.
type AmountSource string

const (
	SourceOCR  AmountSource = "ocr"
	SourceQR   AmountSource = "qr"
	SourceNone AmountSource = "none"
)

// AmountCheck is the advisory comparison of a slip against its bill.
// CanVerify is false when the slip carried no amount at all; IsMatch is
// only meaningful when CanVerify is true.
type AmountCheck struct {
	BillAmount      float64      `json:"billAmount"`
	EffectiveAmount *float64     `json:"effectiveAmount,omitempty"`
	Source          AmountSource `json:"source"`
	CanVerify       bool         `json:"canVerify"`
	IsMatch         bool         `json:"isMatch"`
	Difference      *float64     `json:"difference,omitempty"`
}

// SubmitPaymentRequest carries the non-file fields of a slip upload.
type SubmitPaymentRequest struct {
	BillID  string   `form:"billId" json:"billId" binding:"required"`
	OCRData *OCRData `json:"ocrData"`
	QRData  *QRData  `json:"qrData"`
}

// UpdateOCRRequest is the admin correction of OCR fields before approval.
type UpdateOCRRequest struct {
	OCRData *OCRData `json:"ocrData" binding:"required"`
}

type RejectPaymentRequest struct {
	Reason string `json:"reason"`
}

// VerificationResult is returned by approve so the UI can show the advisory warning.
type VerificationResult struct {
	Payment *Payment    `json:"payment"`
	Bill    *Bill       `json:"bill"`
	Check   AmountCheck `json:"check"`
	Warning string      `json:"warning,omitempty"`
}

// PaymentFilter narrows payment listings. Zero values mean "any".
type PaymentFilter struct {
	TenantID string
	BillID   string
	Status   PaymentStatus
}
