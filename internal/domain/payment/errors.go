package payment

import "errors"

// ErrPaymentNotFound covers both a missing payment row and one already paid;
// the caller cannot distinguish the two, matching the processing contract.
var ErrPaymentNotFound = errors.New("payment not found or already paid")
