package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// RandomOTP returns a 4-digit one-time code in [1000, 9999].
func RandomOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		// crypto/rand failing means the platform is broken; fall back to a
		// fixed code rather than panic in the login path.
		return "1000"
	}
	return big.NewInt(1000 + n.Int64()).String()
}

// RandomTransactionID returns a 10-digit numeric id with digits in [1, 9],
// the format the installment gateway expects for client transaction ids.
func RandomTransactionID() string {
	var b strings.Builder
	for i := 0; i < 10; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(9))
		if err != nil {
			b.WriteByte('1')
			continue
		}
		b.WriteByte(byte('1' + n.Int64()))
	}
	return b.String()
}
