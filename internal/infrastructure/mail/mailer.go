// Package mail envía las órdenes de compra a los proveedores por SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/smtp"
	"strings"

	"github.com/jhoicas/magazzino-api/internal/application/purchasing"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jordan-wright/email"
)

var _ purchasing.SupplierNotifier = (*Mailer)(nil)

// Config datos SMTP y direcciones de proveedor (supplier -> email).
type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	From      string
	Suppliers map[string]string
}

// Mailer envía la orden con la hoja PDF adjunta.
type Mailer struct {
	cfg  Config
	addr string
	send func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewMailer construye el notificador.
func NewMailer(cfg Config) *Mailer {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &Mailer{
		cfg:  cfg,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		send: func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
	}
}

// NotifyOrderSent envía la orden al proveedor. Sin dirección configurada no hace nada.
func (m *Mailer) NotifyOrderSent(_ context.Context, order *entity.Order, pdf []byte) error {
	to := m.cfg.Suppliers[order.Supplier]
	if to == "" {
		return nil
	}
	var attachment io.Reader
	if len(pdf) > 0 {
		attachment = bytes.NewReader(pdf)
	}
	e, err := m.compose(order, to, attachment)
	if err != nil {
		return err
	}
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	if err := m.send(e, m.addr, auth); err != nil {
		return fmt.Errorf("mail: enviar orden %s: %w", order.OrderID, err)
	}
	return nil
}

func (m *Mailer) compose(order *entity.Order, to string, pdf io.Reader) (*email.Email, error) {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = "Ordine " + order.OrderID

	var b strings.Builder
	fmt.Fprintf(&b, "Ordine %s (%s)\n\n", order.OrderID, order.Supplier)
	for _, l := range order.Lines {
		fmt.Fprintf(&b, "- %s: %d conf.\n", l.SKU, l.QtyOrderedConf)
	}
	if order.Notes != nil {
		fmt.Fprintf(&b, "\nNote: %s\n", *order.Notes)
	}
	e.Text = []byte(b.String())

	if pdf != nil {
		if _, err := e.Attach(pdf, order.OrderID+".pdf", "application/pdf"); err != nil {
			return nil, fmt.Errorf("mail: adjuntar PDF de la orden %s: %w", order.OrderID, err)
		}
	}
	return e, nil
}

// ParseSupplierEmails interpreta "DORECA=a@b.it,ALPORI=c@d.it".
func ParseSupplierEmails(s string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		k = strings.ToUpper(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}
