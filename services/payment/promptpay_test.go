package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dynamicQR = "00020101021229370016A0000006770101110113006681234567853037645406500.005802TH62140510INV202400163045397"
	staticQR  = "00020101021129370016A0000006770101110113006681234567853037645802TH62100106BILL7763047EA4"
)

func TestCRC16CCITT_CheckValue(t *testing.T) {
	assert.Equal(t, uint16(0x29B1), crc16CCITT([]byte("123456789")))
}

func TestParsePromptPayQR_Dynamic(t *testing.T) {
	qr, err := ParsePromptPayQR(dynamicQR)
	require.NoError(t, err)

	require.NotNil(t, qr.Amount)
	assert.Equal(t, 500.0, *qr.Amount)
	assert.Equal(t, "INV2024001", qr.Reference)
	assert.Equal(t, dynamicQR, qr.Raw)
}

func TestParsePromptPayQR_StaticHasNoAmount(t *testing.T) {
	qr, err := ParsePromptPayQR(staticQR)
	require.NoError(t, err)

	assert.Nil(t, qr.Amount)
	assert.Equal(t, "BILL77", qr.Reference)
}

func TestParsePromptPayQR_LowercaseCRCAccepted(t *testing.T) {
	raw := staticQR[:len(staticQR)-4] + "7ea4"
	_, err := ParsePromptPayQR(raw)
	assert.NoError(t, err)
}

func TestParsePromptPayQR_BadChecksum(t *testing.T) {
	raw := dynamicQR[:len(dynamicQR)-4] + "0000"
	_, err := ParsePromptPayQR(raw)
	assert.ErrorIs(t, err, ErrQRChecksum)
}

func TestParsePromptPayQR_TamperedAmount(t *testing.T) {
	raw := "00020101021229370016A0000006770101110113006681234567853037645406900.005802TH62140510INV202400163045397"
	_, err := ParsePromptPayQR(raw)
	assert.ErrorIs(t, err, ErrQRChecksum)
}

func TestParsePromptPayQR_Malformed(t *testing.T) {
	for _, raw := range []string{"", "0002", "000201", "0099AB", "00020101021"} {
		_, err := ParsePromptPayQR(raw)
		assert.ErrorIs(t, err, ErrQRMalformed, raw)
	}
}
