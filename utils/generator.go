package utils

import (
	"log"

	"github.com/jaevor/go-nanoid"
)

// Ambiguous characters (0/O, 1/I/L) are excluded so the IDs survive being read
// out over WhatsApp or typed from a bank statement.
const orderIDAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"
const orderIDLength = 10

var newOrderCode func() string

func init() {
	gen, err := nanoid.CustomASCII(orderIDAlphabet, orderIDLength)
	if err != nil {
		log.Fatalf("🔥 Failed to initialize order ID generator: %v", err)
	}
	newOrderCode = gen
}

// GenerateOrderID returns a new public order identifier, e.g. "ORD7K2M9QWXTZ".
func GenerateOrderID() string {
	return "ORD" + newOrderCode()
}

// GenerateLinkID returns a new payment-link identifier, e.g. "LINK7K2M9QWXTZ".
func GenerateLinkID() string {
	return "LINK" + newOrderCode()
}
