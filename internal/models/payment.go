package models

// QRIS payment tolerance: an absolute difference of up to 0.01 currency
// units between the paid amount and the expected fare is accepted.
const PaymentAmountTolerance = 0.01

type ProcessQrisPaymentRequest struct {
	OrderID     string  `json:"order_id" validate:"required,uuid"`
	PassengerID string  `json:"passenger_id" validate:"required,uuid"`
	Amount      float64 `json:"amount" validate:"gt=0"`
}
