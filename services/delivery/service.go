// Package delivery mails a week's artifacts to the league.
package delivery

import (
	"context"
	"fmt"
	"leagueexport/lib/fantasy"
	"net/smtp"
	"path/filepath"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/delivery")

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	// read from the environment, never from the config file
	Password string `json:"-"`
}

type Options struct {
	Smtp       SmtpConfig
	LeagueName string
	Recipients []string
}

type Service struct {
	config Options
}

func NewService(options Options) Service {
	return Service{config: options}
}

func (s Service) compose(period fantasy.Period, attachments []string) (*email.Email, error) {
	name := s.config.LeagueName
	if name == "" {
		name = "League Export"
	}

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("%s <%s>", name, s.config.Smtp.EmailAddress)
	mail.To = s.config.Recipients
	mail.Subject = fmt.Sprintf("%s: week %d reports (%d)", name, period.Week, period.Year)

	var files []string
	for _, path := range attachments {
		_, err := mail.AttachFile(path)
		if err != nil {
			return nil, fmt.Errorf("attach %s: %w", path, err)
		}
		files = append(files, "- "+filepath.Base(path))
	}

	mail.Text = []byte(fmt.Sprintf(`Here are the reports for week %d of the %d season.

%s
`, period.Week, period.Year, strings.Join(files, "\n")))
	return mail, nil
}

// Send mails attachments to every recipient.
func (s Service) Send(ctx context.Context, period fantasy.Period, attachments []string) error {
	ctx, span := tracer.Start(ctx, "Send")
	defer span.End()

	span.SetAttributes(
		attribute.String("period", period.Key()),
		attribute.Int("attachments", len(attachments)),
	)

	if len(s.config.Recipients) == 0 {
		err := fmt.Errorf("no recipients configured")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if len(attachments) == 0 {
		err := fmt.Errorf("no reports to send for %s", period.Key())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	mail, err := s.compose(period, attachments)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.config.Smtp.Server, s.config.Smtp.Port)
	err = mail.Send(
		addr,
		smtp.PlainAuth("", s.config.Smtp.EmailAddress, s.config.Smtp.Password, s.config.Smtp.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}
	return nil
}
