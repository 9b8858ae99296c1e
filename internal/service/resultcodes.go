package service

// Well-known M-Pesa result codes
const (
	ResultCodeSuccess            = 0
	ResultCodeInsufficientFunds  = 1
	ResultCodeCancelledByUser    = 1032
	ResultCodeUserUnreachable    = 1037
	ResultCodeInvalidInitiator   = 2001
	ResultCodeTransactionExpired = 1019
)

var resultDescriptions = map[int]string{
	ResultCodeSuccess:            "The service request is processed successfully.",
	ResultCodeInsufficientFunds:  "The balance is insufficient for the transaction.",
	ResultCodeCancelledByUser:    "Request cancelled by user",
	ResultCodeUserUnreachable:    "DS timeout user cannot be reached",
	ResultCodeInvalidInitiator:   "The initiator information is invalid.",
	ResultCodeTransactionExpired: "Transaction has expired",
}

// DescribeResultCode returns a human-readable description for known codes, or "".
func DescribeResultCode(code int) string {
	return resultDescriptions[code]
}
