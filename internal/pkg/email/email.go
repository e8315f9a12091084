package email

import (
	"crypto/rand"
	"crypto/tls"
	"fmt"
	"math/big"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendVerificationEmail(toEmail, toName, token string) error
	SendWelcomeEmail(toEmail, toName string) error
	SendPasswordResetEmail(toEmail, toName, token string) error
	SendAdExpiryReminder(toEmail, sponsorName, adTitle string, daysLeft int, endDate time.Time) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for the application
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendVerificationEmail sends an email with a verification link/token
func (s *EmailServiceImpl) SendVerificationEmail(toEmail, toName, token string) error {
	// Without SMTP credentials log the token instead, for development
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("token", token).
			Str("verificationURL", fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", s.config.BaseURL, token)).
			Msg("SMTP credentials not configured - verification email not sent. Use the token/URL above for testing.")
		return nil
	}

	subject := "Verify Your Email Address - ScamWatch"
	verificationURL := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", s.config.BaseURL, token)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to ScamWatch!</h2>
				<p>Hello %s,</p>
				<p>Thank you for registering with ScamWatch. To complete your registration, please verify your email address by clicking the button below:</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #c0392b; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Verify Email</a>
				</div>

				<p>Alternatively, you can use this verification code: <strong>%s</strong></p>

				<p>This verification link and code will expire in 24 hours.</p>

				<p>If you did not register for a ScamWatch account, please ignore this email.</p>

				<p>Best regards,<br>The ScamWatch Team</p>
			</div>
		</body>
		</html>
	`, toName, verificationURL, token)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendWelcomeEmail sends a welcome email to a newly verified user
func (s *EmailServiceImpl) SendWelcomeEmail(toEmail, toName string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("toName", toName).
			Msg("SMTP credentials not configured - welcome email not sent.")
		return nil
	}

	subject := "Welcome to ScamWatch - Your Account is Active"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to ScamWatch!</h2>
				<p>Hello %s,</p>
				<p>Your email has been verified and your account is now active. You can now submit scam reports, confirm reports from other users and join the discussion.</p>

				<p>Thank you for helping keep the community safe!</p>

				<p>Best regards,<br>The ScamWatch Team</p>
			</div>
		</body>
		</html>
	`, toName)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendPasswordResetEmail sends a password reset link to the user
func (s *EmailServiceImpl) SendPasswordResetEmail(toEmail, toName, token string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("token", token).
			Msg("SMTP credentials not configured - password reset email not sent. Use the token above for testing.")
		return nil
	}

	subject := "Reset Your Password - ScamWatch"
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, token)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Password Reset Request</h2>
				<p>Hello %s,</p>
				<p>We received a request to reset the password of your ScamWatch account. Click the button below to choose a new password:</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #c0392b; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Password</a>
				</div>

				<p>This link will expire in 1 hour. If you did not request a password reset, you can safely ignore this email.</p>

				<p>Best regards,<br>The ScamWatch Team</p>
			</div>
		</body>
		</html>
	`, toName, resetURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendAdExpiryReminder notifies a sponsor that their advertisement is close to
// its end date.
func (s *EmailServiceImpl) SendAdExpiryReminder(toEmail, sponsorName, adTitle string, daysLeft int, endDate time.Time) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("adTitle", adTitle).
			Int("daysLeft", daysLeft).
			Msg("SMTP credentials not configured - ad expiry reminder not sent.")
		return nil
	}

	subject := fmt.Sprintf("Your ScamWatch advertisement expires in %d days", daysLeft)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Advertisement Expiry Reminder</h2>
				<p>Hello %s,</p>
				<p>Your advertisement <strong>%s</strong> on ScamWatch will expire on <strong>%s</strong> (%d days from now).</p>

				<p>To keep your campaign running without interruption, please contact us to renew your package before the end date.</p>

				<p>Best regards,<br>The ScamWatch Team</p>
			</div>
		</body>
		</html>
	`, sponsorName, adTitle, endDate.Format("2 January 2006"), daysLeft)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		_, err = w.Write([]byte(message))
		if err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		err = w.Close()
		if err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// GenerateToken generates a random token for email verification and password
// reset flows.
func GenerateToken() (string, error) {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, 32)

	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", fmt.Errorf("secure random generation failed: %w", err)
		}
		result[i] = chars[n.Int64()]
	}

	return string(result), nil
}
