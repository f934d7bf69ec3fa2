package email

// Config holds outbound mail configuration.
// SMTP credentials and the Postmark token are optional: absent
// credentials is a supported configuration in which the email channel
// reports deliveries as skipped instead of failing.
type Config struct {
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	PostmarkServerToken string `env:"POSTMARK_SERVER_TOKEN"`

	SenderEmail string `env:"SENDER_EMAIL"`
	SenderName  string `env:"SENDER_NAME" envDefault:"School Administration"`
}

// SMTPConfigured reports whether the SMTP relay settings are present.
func (c Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SenderEmail != ""
}

// PostmarkConfigured reports whether the Postmark settings are present.
func (c Config) PostmarkConfigured() bool {
	return c.PostmarkServerToken != "" && c.SenderEmail != ""
}
