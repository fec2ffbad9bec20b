package email

import "fmt"

// Template tags used for provider-side analytics and DevSender filenames.
const (
	TagResetRequest = "password-reset-request"
	TagResetSuccess = "password-reset-success"
)

// ResetRequestEmail builds the password-reset email. The reset URL embeds
// the raw single-use token; this message is the only place the raw value
// ever appears.
func ResetRequestEmail(to, resetURL string) SendEmailParams {
	body := fmt.Sprintf(`<h2>Password Reset Request</h2>
<p>You have requested to reset your password. Please click the link below to reset your password:</p>
<p>
  <a href="%[1]s" style="background-color: #007bff; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">
    Reset Password
  </a>
</p>
<p>Or copy and paste this link in your browser:</p>
<p>%[1]s</p>
<p>This link will expire in 1 hour.</p>
<p>If you did not request this password reset, please ignore this email.</p>
<hr>
<p><small>Vite Shop - E-commerce Platform</small></p>`, resetURL)

	return SendEmailParams{
		SendTo:   to,
		Subject:  "Password Reset Request - Vite Shop",
		BodyHTML: body,
		Tag:      TagResetRequest,
	}
}

// ResetSuccessEmail builds the confirmation sent after a successful
// password reset.
func ResetSuccessEmail(to, name, signinURL string) SendEmailParams {
	body := fmt.Sprintf(`<h2>Password Reset Successful</h2>
<p>Hi %s,</p>
<p>Your password has been successfully reset.</p>
<p>You can now log in with your new password.</p>
<p>
  <a href="%s" style="background-color: #28a745; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">
    Go to Sign In
  </a>
</p>
<p>If you did not request this change, please contact our support team immediately.</p>
<hr>
<p><small>Vite Shop - E-commerce Platform</small></p>`, name, signinURL)

	return SendEmailParams{
		SendTo:   to,
		Subject:  "Password Reset Successful - Vite Shop",
		BodyHTML: body,
		Tag:      TagResetSuccess,
	}
}
