package payment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"rentflow/models"
)

// EMVCo merchant-presented QR tags used by PromptPay.
const (
	tagAmount         = "54"
	tagAdditionalData = "62"
	tagCRC            = "63"
	subTagBillNumber  = "01"
	subTagReference   = "05"
)

var (
	ErrQRMalformed = errors.New("malformed EMVCo payload")
	ErrQRChecksum  = errors.New("EMVCo checksum mismatch")
)

// ParsePromptPayQR decodes a raw PromptPay payload after verifying its CRC.
// Amount stays nil for static QR codes that carry none.
func ParsePromptPayQR(raw string) (*models.QRData, error) {
	raw = strings.TrimSpace(raw)
	fields, err := parseTLV(raw)
	if err != nil {
		return nil, err
	}

	crc, ok := fields[tagCRC]
	if !ok || len(crc) != 4 || !strings.HasSuffix(raw, tagCRC+"04"+crc) {
		return nil, fmt.Errorf("%w: missing CRC", ErrQRMalformed)
	}
	want := fmt.Sprintf("%04X", crc16CCITT([]byte(raw[:len(raw)-4])))
	if !strings.EqualFold(want, crc) {
		return nil, ErrQRChecksum
	}

	qr := &models.QRData{Raw: raw}
	if v, ok := fields[tagAmount]; ok {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil || amount < 0 {
			return nil, fmt.Errorf("%w: bad amount %q", ErrQRMalformed, v)
		}
		qr.Amount = &amount
	}
	if v, ok := fields[tagAdditionalData]; ok {
		sub, err := parseTLV(v)
		if err != nil {
			return nil, err
		}
		if ref := sub[subTagReference]; ref != "" {
			qr.Reference = ref
		} else {
			qr.Reference = sub[subTagBillNumber]
		}
	}
	return qr, nil
}

// parseTLV splits an EMVCo string of 2-digit tag, 2-digit length, value.
func parseTLV(s string) (map[string]string, error) {
	out := make(map[string]string)
	for i := 0; i < len(s); {
		if i+4 > len(s) {
			return nil, fmt.Errorf("%w: truncated header at %d", ErrQRMalformed, i)
		}
		tag := s[i : i+2]
		n, err := strconv.Atoi(s[i+2 : i+4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: bad length for tag %s", ErrQRMalformed, tag)
		}
		i += 4
		if i+n > len(s) {
			return nil, fmt.Errorf("%w: tag %s overruns payload", ErrQRMalformed, tag)
		}
		out[tag] = s[i : i+n]
		i += n
	}
	return out, nil
}

// crc16CCITT is CRC-16/CCITT-FALSE: poly 0x1021, init 0xFFFF, no reflection.
func crc16CCITT(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
