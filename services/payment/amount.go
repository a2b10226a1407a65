package payment

import (
	"rentflow/models"
	"rentflow/utils"

	"github.com/shopspring/decimal"
)

// matchTolerance is the largest difference still treated as a match.
var matchTolerance = decimal.RequireFromString("0.01")

// CheckAmount compares the slip amount with billAmount. OCR wins over QR;
// with neither the result cannot be verified, which is not a mismatch.
func CheckAmount(billAmount float64, ocr *models.OCRData, qr *models.QRData) models.AmountCheck {
	check := models.AmountCheck{BillAmount: billAmount, Source: models.SourceNone}

	var amount *float64
	switch {
	case ocr != nil && ocr.Amount != nil:
		amount, check.Source = ocr.Amount, models.SourceOCR
	case qr != nil && qr.Amount != nil:
		amount, check.Source = qr.Amount, models.SourceQR
	default:
		return check
	}

	effective := *amount
	diff := decimal.NewFromFloat(effective).Sub(decimal.NewFromFloat(billAmount))
	d, _ := diff.Round(2).Float64()

	check.EffectiveAmount = &effective
	check.Difference = &d
	check.CanVerify = true
	check.IsMatch = diff.Abs().LessThan(matchTolerance)
	return check
}

// Warning is the advisory text shown with an approval, empty on a match.
func Warning(check models.AmountCheck) string {
	switch {
	case !check.CanVerify:
		return utils.MsgAmountUnknown
	case !check.IsMatch:
		return utils.MsgAmountMismatch
	default:
		return ""
	}
}
