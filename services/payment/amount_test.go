package payment

import (
	"testing"

	"rentflow/models"
	"rentflow/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestCheckAmount_ExactMatch(t *testing.T) {
	check := CheckAmount(1000.00, &models.OCRData{Amount: ptr(1000.00)}, nil)

	assert.True(t, check.CanVerify)
	assert.True(t, check.IsMatch)
	assert.Equal(t, models.SourceOCR, check.Source)
	require.NotNil(t, check.EffectiveAmount)
	assert.Equal(t, 1000.00, *check.EffectiveAmount)
	assert.Empty(t, Warning(check))
}

func TestCheckAmount_Mismatch(t *testing.T) {
	check := CheckAmount(1000.00, &models.OCRData{Amount: ptr(999.00)}, nil)

	assert.True(t, check.CanVerify)
	assert.False(t, check.IsMatch)
	require.NotNil(t, check.Difference)
	assert.Equal(t, -1.0, *check.Difference)
	assert.Equal(t, utils.MsgAmountMismatch, Warning(check))
}

func TestCheckAmount_Tolerance(t *testing.T) {
	assert.True(t, CheckAmount(0.3, &models.OCRData{Amount: ptr(0.1 + 0.2)}, nil).IsMatch)
	assert.True(t, CheckAmount(1000.00, &models.OCRData{Amount: ptr(1000.009)}, nil).IsMatch)
	assert.False(t, CheckAmount(1000.00, &models.OCRData{Amount: ptr(1000.01)}, nil).IsMatch)
}

func TestCheckAmount_QRFallback(t *testing.T) {
	check := CheckAmount(500, nil, &models.QRData{Amount: ptr(500)})

	assert.Equal(t, models.SourceQR, check.Source)
	require.NotNil(t, check.EffectiveAmount)
	assert.Equal(t, 500.0, *check.EffectiveAmount)
	assert.True(t, check.IsMatch)
}

func TestCheckAmount_OCRWinsOverQR(t *testing.T) {
	check := CheckAmount(500, &models.OCRData{Amount: ptr(450)}, &models.QRData{Amount: ptr(500)})

	assert.Equal(t, models.SourceOCR, check.Source)
	assert.False(t, check.IsMatch)
}

func TestCheckAmount_OCRWithoutAmountFallsBackToQR(t *testing.T) {
	check := CheckAmount(500, &models.OCRData{Reference: "X1"}, &models.QRData{Amount: ptr(500)})
	assert.Equal(t, models.SourceQR, check.Source)
}

func TestCheckAmount_NoAmountCannotVerify(t *testing.T) {
	check := CheckAmount(1000, &models.OCRData{}, &models.QRData{Reference: "abc"})

	assert.False(t, check.CanVerify)
	assert.False(t, check.IsMatch)
	assert.Nil(t, check.EffectiveAmount)
	assert.Equal(t, models.SourceNone, check.Source)
	assert.Equal(t, utils.MsgAmountUnknown, Warning(check))
}
