package email

// Config holds email delivery settings. The Postmark tokens are optional so
// development environments can run on the DevSender; SenderEmail and
// SupportEmail establish sender identity and reply-to for every outbound
// message.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
	DevMailDir           string `env:"DEV_MAIL_DIR" envDefault:"./tmp/mail"`
}
