// Package notify delivers recommendation update notifications to users.
// Delivery is best effort; callers log failures and move on.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Recommendation is one line of a recommendation notification.
type Recommendation struct {
	CourseTitle     string
	SimilarityScore float64
}

// Notifier sends a user their refreshed recommendation list.
type Notifier interface {
	NotifyRecommendations(ctx context.Context, email, name string, recommendations []Recommendation) error
}

// NoopNotifier discards all notifications. Used when notifications are
// disabled or no provider is configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyRecommendations(ctx context.Context, email, name string, recommendations []Recommendation) error {
	return nil
}

// SendGridNotifier sends notifications through the SendGrid API.
type SendGridNotifier struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewSendGridNotifier creates a SendGrid-backed notifier.
func NewSendGridNotifier(apiKey, fromName, fromEmail string) (*SendGridNotifier, error) {
	if apiKey == "" {
		return nil, errors.New("sendgrid api key is required")
	}
	if fromEmail == "" {
		return nil, errors.New("sender email is required")
	}
	return &SendGridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

func (n *SendGridNotifier) NotifyRecommendations(ctx context.Context, email, name string, recommendations []Recommendation) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(name, email)
	subject := "Your course recommendations were updated"
	plain := composePlainBody(name, recommendations)
	message := mail.NewSingleEmail(from, subject, to, plain, composeHTMLBody(name, recommendations))

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return errors.Wrap(err, "failed to send notification")
	}
	if response.StatusCode >= 400 {
		return errors.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

func composePlainBody(name string, recommendations []Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	if len(recommendations) == 0 {
		b.WriteString("Your interests changed and no courses currently match them.\n")
		return b.String()
	}
	b.WriteString("Based on your updated interests, we recommend:\n\n")
	for _, r := range recommendations {
		fmt.Fprintf(&b, "  - %s (match %.2f)\n", r.CourseTitle, r.SimilarityScore)
	}
	return b.String()
}

func composeHTMLBody(name string, recommendations []Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", name)
	if len(recommendations) == 0 {
		b.WriteString("<p>Your interests changed and no courses currently match them.</p>")
		return b.String()
	}
	b.WriteString("<p>Based on your updated interests, we recommend:</p><ul>")
	for _, r := range recommendations {
		fmt.Fprintf(&b, "<li><strong>%s</strong> (match %.2f)</li>", r.CourseTitle, r.SimilarityScore)
	}
	b.WriteString("</ul>")
	return b.String()
}
