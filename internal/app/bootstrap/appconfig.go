// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration; ports, TLS and log levels
// live in CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer token configuration
	TokenKey    string        // Secret key for signing auth tokens (must be strong in production)
	TokenExpiry time.Duration // How long an issued token stays valid

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty disables auth)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@meethub.app)
	MailFromName string // From display name (e.g., MeetHub)

	// Base URL for email links (password reset)
	BaseURL string // e.g., "https://meethub.app" or "http://localhost:3000"

	// ReminderWindow is both the reminder scan interval and how far ahead
	// each scan looks for starting meetings.
	ReminderWindow time.Duration
}
