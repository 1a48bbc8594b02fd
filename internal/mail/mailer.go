// Package mail renders account emails and hands them to a delivery transport.
package mail

import (
	"context"
	"fmt"
)

// Message is a rendered email ready for delivery.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Transport delivers rendered messages.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer renders the tracker's emails and sends them through a transport.
type Mailer struct {
	transport Transport
	from      string
	appName   string
}

// NewMailer constructs a mailer.
func NewMailer(transport Transport, from, appName string) *Mailer {
	if appName == "" {
		appName = "Prime Staffing"
	}
	return &Mailer{transport: transport, from: from, appName: appName}
}

// SendWelcome emails the initial credentials of a new account.
func (m *Mailer) SendWelcome(ctx context.Context, welcome Welcome) error {
	html, err := render(welcomeTemplate, welcomeView{Welcome: welcome, AppName: m.appName})
	if err != nil {
		return err
	}

	return m.send(ctx, Message{
		From:    m.from,
		To:      welcome.To,
		Subject: fmt.Sprintf("Welcome to %s, your account is ready", m.appName),
		HTML:    html,
	})
}

// SendPasswordReset emails a reset link.
func (m *Mailer) SendPasswordReset(ctx context.Context, reset PasswordReset) error {
	if reset.ExpiresIn == "" {
		reset.ExpiresIn = "1 hour"
	}
	html, err := render(resetTemplate, resetView{PasswordReset: reset, AppName: m.appName})
	if err != nil {
		return err
	}

	return m.send(ctx, Message{
		From:    m.from,
		To:      reset.To,
		Subject: fmt.Sprintf("Reset your %s password", m.appName),
		HTML:    html,
	})
}

func (m *Mailer) send(ctx context.Context, msg Message) error {
	if err := m.transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %q: %w", msg.Subject, err)
	}
	return nil
}
