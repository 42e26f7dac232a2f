package service

import (
	"anha/internal/domain/entity"
)

// PaymentQRService renders the scan-to-pay QR for a bank-transfer order.
type PaymentQRService interface {
	// PaymentQR returns a PNG image encoding the transfer to the shop's
	// account with the order's total and reference code prefilled.
	PaymentQR(order *entity.Order) ([]byte, error)
}
