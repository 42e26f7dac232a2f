// Package qrcode renders VietQR payment codes for bank-transfer orders.
package qrcode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"

	"anha/config"
	"anha/internal/domain/entity"
	"anha/internal/domain/service"
	"anha/internal/errors"
)

const (
	defaultQRSize = 512

	// napasAID identifies the NAPAS 247 transfer service inside the EMVCo
	// merchant account information template.
	napasAID = "A000000727"

	// currencyVND is the ISO 4217 numeric code for the Vietnamese đồng.
	currencyVND = "704"
)

// paymentQRService builds the EMVCo TLV payload used by Vietnamese banking
// apps and renders it as a PNG.
type paymentQRService struct {
	bankBin       string
	accountNumber string
	size          int
	level         qrcode.RecoveryLevel
}

// NewPaymentQRService is the constructor for paymentQRService.
func NewPaymentQRService(cfg *config.Config) (service.PaymentQRService, error) {
	if cfg.Bank == nil || cfg.Bank.BankBin == "" || cfg.Bank.AccountNumber == "" {
		return nil, errors.New("bank.bankBin and bank.accountNumber must be provided")
	}

	size := defaultQRSize
	level := qrcode.Medium
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		switch cfg.QRCode.ErrorCorrectionLevel {
		case "L":
			level = qrcode.Low
		case "M":
			level = qrcode.Medium
		case "Q":
			level = qrcode.High
		case "H":
			level = qrcode.Highest
		}
	}

	return &paymentQRService{
		bankBin:       cfg.Bank.BankBin,
		accountNumber: cfg.Bank.AccountNumber,
		size:          size,
		level:         level,
	}, nil
}

// PaymentQR renders the scan-to-pay PNG for an order. The payload prefills
// the shop's account, the order total and the reference code so the customer
// only has to confirm in their banking app.
func (s *paymentQRService) PaymentQR(order *entity.Order) ([]byte, error) {
	payload := s.buildPayload(order.TotalPrice, order.ReferenceCode())

	png, err := qrcode.Encode(payload, s.level, s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode payment QR")
	}

	return png, nil
}

// buildPayload assembles the EMVCo TLV string in the NAPAS VietQR layout:
// static header, NAPAS merchant account template, currency, amount, country
// and the transfer note, closed by a CRC-16 checksum.
func (s *paymentQRService) buildPayload(amount int64, referenceCode string) string {
	beneficiary := tlv("00", s.bankBin) + tlv("01", s.accountNumber)
	merchantAccount := tlv("00", napasAID) + tlv("01", beneficiary) + tlv("02", "QRIBFTTA")

	var b strings.Builder
	b.WriteString(tlv("00", "01")) // payload format indicator
	b.WriteString(tlv("01", "12")) // dynamic QR, one payment per code
	b.WriteString(tlv("38", merchantAccount))
	b.WriteString(tlv("53", currencyVND))
	b.WriteString(tlv("54", strconv.FormatInt(amount, 10)))
	b.WriteString(tlv("58", "VN"))
	b.WriteString(tlv("62", tlv("08", referenceCode)))

	// The CRC field covers everything up to and including its own ID+length.
	b.WriteString("6304")
	payload := b.String()

	return payload + fmt.Sprintf("%04X", crc16CCITT([]byte(payload)))
}

func tlv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// crc16CCITT computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), the
// checksum EMVCo QR payloads mandate.
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
