package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"math/big"
)

// GenerateOTP produces a 6-digit one-time code for password reset.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		log.Printf("OTP generation fell back to weak source: %v", err)
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// GenerateResetToken generates a random token handed out after a
// successful OTP verification and consumed by the password reset call.
func GenerateResetToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Printf("Reset token generation error: %v", err)
	}
	return hex.EncodeToString(bytes)
}

// OTPSender delivers one-time codes to users. Actual transport (mail,
// SMS) is an external concern; the default sender only logs.
type OTPSender interface {
	SendOTP(email, otp string) error
}

// LogOTPSender writes codes to the application log instead of sending
// them anywhere. Used in development and tests.
type LogOTPSender struct{}

func (LogOTPSender) SendOTP(email, otp string) error {
	log.Printf("OTP for %s: %s", email, otp)
	return nil
}

// Sender is the process-wide OTP delivery channel.
var Sender OTPSender = LogOTPSender{}
