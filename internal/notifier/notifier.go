package notifier

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/google/uuid"

	"ms-attendance/internal/config"
	"ms-attendance/internal/logger"
)

// SendFunc sends one message. It matches smtp.SendMail so tests can swap
// in a recorder without a mail server.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Summary reports the result of one batch send. BatchID ties the summary
// back to the log lines emitted while the batch ran.
type Summary struct {
	BatchID string   `json:"batch_id"`
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// Dispatcher sends notification emails in the background. The HTTP request
// that triggers a batch returns immediately; the outcome arrives through
// the callback.
type Dispatcher struct {
	Config config.EmailConfig
	Logger *logger.Logger
	Send   SendFunc
}

func NewDispatcher(cfg config.EmailConfig, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		Config: cfg,
		Logger: log,
		Send:   smtp.SendMail,
	}
}

func (d *Dispatcher) message(recipient, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", d.Config.SenderEmail)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// SendBatch dispatches the batch on a goroutine and returns at once.
// Recipients are sent sequentially so a bad address fails alone and a large
// roster never holds more than one SMTP connection. The callback receives
// the aggregated summary; pass nil to discard it.
func (d *Dispatcher) SendBatch(recipients []string, subject, body string, done func(Summary)) string {
	batchID := uuid.New().String()
	go func() {
		summary := d.sendAll(batchID, recipients, subject, body)
		if d.Logger != nil {
			d.Logger.LogEmail("BATCH", fmt.Sprintf("batch=%s %d recipients", batchID, len(recipients)),
				fmt.Sprintf("sent=%d failed=%d", summary.Sent, summary.Failed))
		}
		if done != nil {
			done(summary)
		}
	}()
	return batchID
}

func (d *Dispatcher) sendAll(batchID string, recipients []string, subject, body string) Summary {
	addr := net.JoinHostPort(d.Config.SMTPHost, d.Config.SMTPPort)
	var auth smtp.Auth
	if d.Config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", d.Config.SMTPUsername, d.Config.SMTPPassword, d.Config.SMTPHost)
	}

	summary := Summary{BatchID: batchID}
	for _, recipient := range recipients {
		err := d.Send(addr, auth, d.Config.SenderEmail, []string{recipient}, d.message(recipient, subject, body))
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", recipient, err))
			if d.Logger != nil {
				d.Logger.LogEmail("FAILED", recipient, err.Error())
			}
			continue
		}
		summary.Sent++
	}
	return summary
}
