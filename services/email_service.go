package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"motoshop-api/config"
	"motoshop-api/models"
)

// EmailService sends account verification codes and invoice notifications.
// Verification codes live in memory with a 10 minute expiry.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer

	verificationCodes map[string]VerificationCode
	mutex             sync.RWMutex
}

type VerificationCode struct {
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	service := &EmailService{
		config:            cfg,
		dialer:            dialer,
		verificationCodes: make(map[string]VerificationCode),
	}

	go service.cleanupExpiredCodes()

	return service
}

// generateVerificationCode returns a random 4-digit code.
func (es *EmailService) generateVerificationCode() string {
	const digits = "0123456789"
	code := make([]byte, 4)

	for i := range code {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		code[i] = digits[num.Int64()]
	}

	return string(code)
}

// SendVerificationEmail mails a verification code to a new account, reusing
// a still-valid unused code when one exists.
func (es *EmailService) SendVerificationEmail(email, name string) (string, error) {
	es.mutex.RLock()
	existing, exists := es.verificationCodes[email]
	es.mutex.RUnlock()

	var code string
	if exists && !existing.Used && time.Now().Before(existing.ExpiresAt) {
		code = existing.Code
	} else {
		code = es.generateVerificationCode()

		es.mutex.Lock()
		es.verificationCodes[email] = VerificationCode{
			Code:      code,
			Email:     email,
			ExpiresAt: time.Now().Add(10 * time.Minute),
			Used:      false,
		}
		es.mutex.Unlock()
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Verify your account")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour verification code is: %s\n\nThe code expires in 10 minutes.\n",
		name, code,
	))

	if err := es.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send verification email: %w", err)
	}

	logrus.WithField("email", email).Debug("Verification email sent")
	return code, nil
}

// VerifyCode checks a submitted code and consumes it on success.
func (es *EmailService) VerifyCode(email, code string) error {
	es.mutex.Lock()
	defer es.mutex.Unlock()

	stored, exists := es.verificationCodes[email]
	if !exists {
		return errors.New("no verification code found for this email")
	}
	if stored.Used {
		return errors.New("verification code already used")
	}
	if time.Now().After(stored.ExpiresAt) {
		return errors.New("verification code expired")
	}
	if stored.Code != code {
		return errors.New("invalid verification code")
	}

	stored.Used = true
	es.verificationCodes[email] = stored
	return nil
}

// SendInvoiceNotification mails the customer that an invoice was issued for
// their repair.
func (es *EmailService) SendInvoiceNotification(email, name string, invoice *models.Invoice) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Invoice %s", invoice.Number))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour repair is complete. Invoice %s has been issued.\n\n"+
			"Subtotal: %.2f\nVAT (22%%): %.2f\nTotal: %.2f\n\nDue by %s.\n",
		name, invoice.Number, invoice.Subtotal, invoice.Tax, invoice.Total,
		invoice.DueDate.Format("2 January 2006"),
	))

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send invoice notification: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"email":   email,
		"invoice": invoice.Number,
	}).Debug("Invoice notification sent")
	return nil
}

// cleanupExpiredCodes drops expired verification codes every 5 minutes.
func (es *EmailService) cleanupExpiredCodes() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		es.mutex.Lock()
		now := time.Now()
		for email, code := range es.verificationCodes {
			if now.After(code.ExpiresAt) {
				delete(es.verificationCodes, email)
			}
		}
		es.mutex.Unlock()
	}
}
