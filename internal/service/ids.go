package service

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// newAccountID produces the 6-digit account identifiers the browser
// client expects.
func newAccountID() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}

// companyCode derives the employee badge code from an account ID.
func companyCode(id string) string {
	return "TC-EMP-" + id
}

func newTicketID() string {
	return "T-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// newTempPassword generates a one-time temporary credential. The
// plaintext is handed to the caller exactly once; only the hash is kept.
func newTempPassword() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
