package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/notify"
)

// NotificationService turns domain events into emails. Creation alerts go to
// the department admin alias; status changes go to the ticket's snapshotted
// employee address. Delivery failures are logged here and never escalate.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     notify.Mailer
	logger     *zap.Logger
	cfg        config.SMTPConfig
	portalURL  string
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer notify.Mailer, logger *zap.Logger, cfg config.SMTPConfig, portalURL string) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
		portalURL:  portalURL,
	}
}

// RegisterHandlers subscribes to ticket events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
}

// AdminAlertAddress routes a new-ticket alert to the department admin.
func (n *NotificationService) AdminAlertAddress(issueType string) string {
	switch issueType {
	case domain.DepartmentITSupport:
		return n.cfg.ITSupportAlias
	case domain.DepartmentERPSupport:
		return n.cfg.ERPSupportAlias
	}
	return n.cfg.DefaultAdminEmail
}

// SendOTPEmail delivers a login OTP to an admin.
func (n *NotificationService) SendOTPEmail(ctx context.Context, email, name, otp string) error {
	body := fmt.Sprintf("Hello %s!\n\nYour One-Time Password (OTP) for login is: %s\n\nThis OTP will expire in 10 minutes. Please do not share it with anyone.\n", name, otp)
	return n.mailer.Send(ctx, notify.Message{
		To:      email,
		Subject: "Login OTP - Helpdesk System",
		Body:    body,
	})
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}

	to := n.AdminAlertAddress(payload.IssueType)
	body := fmt.Sprintf(
		"A new ticket has been submitted to your department.\n\nTicket ID: %s\nEmployee: %s (%s)\nDepartment: %s\nPriority: %s\n\nDescription:\n%s\n\nView ticket: %s/admin\n",
		payload.TicketID, payload.EmployeeName, payload.EmployeeID,
		payload.IssueType, payload.Priority, payload.Description, n.portalURL)

	if err := n.mailer.Send(ctx, notify.Message{
		To:      to,
		Subject: fmt.Sprintf("New Ticket Alert: %s - %s", payload.TicketID, payload.IssueType),
		Body:    body,
	}); err != nil {
		n.logger.Error("failed to send admin alert",
			zap.String("ticket_id", payload.TicketID),
			zap.String("to", to),
			zap.Error(err))
		return err
	}
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}

	body := fmt.Sprintf("Hello %s!\n\nYour ticket %s has been updated.\nNew Status: %s\n",
		payload.EmployeeName, payload.TicketID, payload.NewStatus)
	if payload.Comment != "" {
		body += fmt.Sprintf("Comment: %s\n", payload.Comment)
	}
	body += "\nYou can check your ticket status anytime by visiting the employee portal.\n"

	if err := n.mailer.Send(ctx, notify.Message{
		To:      payload.EmployeeEmail,
		Subject: fmt.Sprintf("Ticket Update: %s", payload.TicketID),
		Body:    body,
	}); err != nil {
		// The update call path awaits this handler; failures are logged and
		// swallowed so a broken mail transport cannot fail the update.
		n.logger.Error("failed to send ticket update email",
			zap.String("ticket_id", payload.TicketID),
			zap.String("to", payload.EmployeeEmail),
			zap.Error(err))
	}
	return nil
}
