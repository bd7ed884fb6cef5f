package messaging

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Delivery is one outbound message over email and/or SMS. Empty fields skip
// the corresponding channel.
type Delivery struct {
	Email   string
	Subject string
	Text    string
	HTML    string

	Phone string // raw; formatted before sending
	SMS   string
}

// DeliveryReport tells the caller which channels went out.
type DeliveryReport struct {
	EmailSent bool
	SMSSent   bool
	EmailErr  error
	SMSErr    error
}

// Dispatcher performs best-effort delivery. Every failure is logged here and
// reported, never returned.
type Dispatcher struct {
	mailer Mailer
	sms    SMSSender
}

func NewDispatcher(mailer Mailer, sms SMSSender) *Dispatcher {
	if mailer == nil {
		mailer = NoopMailer{}
	}
	if sms == nil {
		sms = NoopSMS{}
	}
	return &Dispatcher{mailer: mailer, sms: sms}
}

func (d *Dispatcher) Deliver(ctx context.Context, msg Delivery) DeliveryReport {
	var report DeliveryReport

	if msg.Email != "" && msg.Subject != "" {
		if err := d.mailer.Send(ctx, msg.Email, msg.Subject, msg.Text, msg.HTML); err != nil {
			report.EmailErr = err
			logrus.WithError(err).WithField("to", msg.Email).Error("Email delivery failed")
		} else {
			report.EmailSent = true
		}
	}

	if msg.SMS != "" {
		phone := FormatPhoneNumber(msg.Phone)
		if phone == "" {
			logrus.WithField("phone", msg.Phone).Warn("No usable phone number for SMS")
			return report
		}
		if err := d.sms.Send(ctx, phone, msg.SMS); err != nil {
			report.SMSErr = err
			logrus.WithError(err).WithField("to", phone).Error("SMS delivery failed")
		} else {
			report.SMSSent = true
		}
	}

	return report
}
