package email

// Template names a file under templates/emails (without extension).
type Template string

const (
	TemplateWelcome        Template = "welcome"
	TemplateReviewReceived Template = "review_received"
)
