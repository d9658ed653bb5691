package email

// SendWelcomeEmail greets a newly signed-up user by name.
func (c *Client) SendWelcomeEmail(to, name string) error {
	return c.SendEmail(to, "Welcome to HackTrack", TemplateWelcome, map[string]string{
		"Name": name,
	})
}

// SendReviewReceivedEmail thanks a user for submitting event feedback.
func (c *Client) SendReviewReceivedEmail(to, eventName string) error {
	return c.SendEmail(to, "Thanks for your feedback", TemplateReviewReceived, map[string]string{
		"EventName": eventName,
	})
}
