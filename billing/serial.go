package billing

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// SerialLength is the length of invoice and feedback serial numbers.
const SerialLength = 10

// NewSerialNumber produces a human-looking serial number: ten characters
// sampled from the current date (YYYYMMDD) plus four random digits.
// Uniqueness is not guaranteed here; the database unique index on
// serial_number rejects the rare duplicate and the caller reports the
// conflict to the submitter.
func NewSerialNumber() string {
	pool := time.Now().Format("20060102") + fmt.Sprintf("%04d", randomInt(9000)+1000)

	serial := make([]byte, SerialLength)
	for i := range serial {
		serial[i] = pool[randomInt(int64(len(pool)))]
	}
	return string(serial)
}

func randomInt(max int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		// crypto/rand only fails when the platform source is broken;
		// fall back to a time-derived pick rather than panicking.
		return time.Now().UnixNano() % max
	}
	return n.Int64()
}
