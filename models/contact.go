package models

// Reply methods a visitor can request on the contact form.
const (
	ReplyMethodEmail  = "email"
	ReplyMethodPhone  = "phone"
	ReplyMethodEither = "either"
)

// ContactSubmission is the contact form payload relayed to the email
// provider. It is request-scoped and never persisted. The server check is
// presence-only; the browser performs the stricter format validation, so a
// present-but-malformed email address passes here.
type ContactSubmission struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Phone       string `json:"phone"`
	Plan        string `json:"plan"`
	Message     string `json:"message" binding:"required"`
	ReplyMethod string `json:"replyMethod" binding:"required,oneof=email phone either"`
}
