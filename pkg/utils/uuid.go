package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateReceiptNo generates a unique receipt number for a recorded payment
func GenerateReceiptNo() string {
	return "RCP-" + strings.ToUpper(uuid.New().String()[:8])
}
