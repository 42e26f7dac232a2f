package qrcode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anha/config"
	"anha/internal/domain/entity"
)

func newTestQRService(t *testing.T) *paymentQRService {
	svc, err := NewPaymentQRService(&config.Config{
		Bank:   &config.BankConfig{BankBin: "970436", AccountNumber: "0123456789"},
		QRCode: &config.QRCodeConfig{Size: 256, ErrorCorrectionLevel: "M"},
	})
	require.NoError(t, err)

	return svc.(*paymentQRService)
}

func TestNewPaymentQRService_RequiresBankAccount(t *testing.T) {
	_, err := NewPaymentQRService(&config.Config{})
	assert.Error(t, err)
}

func TestPaymentQR_ProducesPNG(t *testing.T) {
	svc := newTestQRService(t)

	order := &entity.Order{ID: uuid.New(), TotalPrice: 175000}
	png, err := svc.PaymentQR(order)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestBuildPayload_ContainsTransferDetails(t *testing.T) {
	svc := newTestQRService(t)

	payload := svc.buildPayload(175000, "HDabc123")

	assert.True(t, strings.HasPrefix(payload, "000201"))
	assert.Contains(t, payload, "970436")
	assert.Contains(t, payload, "0123456789")
	assert.Contains(t, payload, "QRIBFTTA")
	assert.Contains(t, payload, "5303704")
	assert.Contains(t, payload, "5406175000")
	assert.Contains(t, payload, "5802VN")
	assert.Contains(t, payload, "HDabc123")
}

func TestBuildPayload_ChecksumIsStable(t *testing.T) {
	svc := newTestQRService(t)

	first := svc.buildPayload(50000, "HD123456")
	second := svc.buildPayload(50000, "HD123456")

	assert.Equal(t, first, second)
	assert.Len(t, first[len(first)-4:], 4)
}

func TestCRC16CCITT_KnownVector(t *testing.T) {
	// "123456789" is the standard check input for CRC-16/CCITT-FALSE.
	assert.Equal(t, uint16(0x29B1), crc16CCITT([]byte("123456789")))
}
