package payment

import (
	"strings"

	"rentflow/models"
	"rentflow/utils"
)

// ValidateOCR applies the slip field rules to admin edits and submissions.
func ValidateOCR(ocr *models.OCRData) error {
	if ocr == nil {
		return nil
	}
	if ocr.Amount != nil && !utils.IsSlipAmount(*ocr.Amount) {
		return utils.NewBadRequest(utils.MsgInvalidAmount)
	}
	ocr.Date = strings.TrimSpace(ocr.Date)
	if ocr.Date != "" && !utils.IsSlipDate(ocr.Date) {
		return utils.NewBadRequest(utils.MsgInvalidSlipDate)
	}
	ocr.Time = strings.TrimSpace(ocr.Time)
	if ocr.Time != "" && !utils.IsSlipTime(ocr.Time) {
		return utils.NewBadRequest(utils.MsgInvalidSlipTime)
	}
	return nil
}
