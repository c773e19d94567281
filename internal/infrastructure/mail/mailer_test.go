package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	e    *email.Email
	addr string
	auth smtp.Auth
}

func newTestMailer(cfg Config, err error) (*Mailer, *[]sentMail) {
	m := NewMailer(cfg)
	var sent []sentMail
	m.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		sent = append(sent, sentMail{e: e, addr: addr, auth: auth})
		return err
	}
	return m, &sent
}

func order() *entity.Order {
	notes := "urgente"
	return &entity.Order{
		OrderID:  "ord_42",
		Supplier: entity.SupplierDoreca,
		Notes:    &notes,
		Lines:    []entity.OrderLine{{SKU: "GIN01", QtyOrderedConf: 3}, {SKU: "VOD01", QtyOrderedConf: 1}},
	}
}

func TestNotifyOrderSent(t *testing.T) {
	m, sent := newTestMailer(Config{
		Host: "smtp.example.com", Port: 587, User: "bar@example.com", Password: "pw",
		Suppliers: map[string]string{"DORECA": "ordini@doreca.it"},
	}, nil)

	require.NoError(t, m.NotifyOrderSent(context.Background(), order(), []byte("%PDF-1.4")))
	require.Len(t, *sent, 1)

	got := (*sent)[0]
	assert.Equal(t, "smtp.example.com:587", got.addr)
	assert.NotNil(t, got.auth)
	assert.Equal(t, "bar@example.com", got.e.From, "sin From se usa el usuario")
	assert.Equal(t, []string{"ordini@doreca.it"}, got.e.To)
	assert.Equal(t, "Ordine ord_42", got.e.Subject)
	body := string(got.e.Text)
	assert.True(t, strings.Contains(body, "- GIN01: 3 conf."))
	assert.Contains(t, body, "Note: urgente")
	require.Len(t, got.e.Attachments, 1)
	assert.Equal(t, "ord_42.pdf", got.e.Attachments[0].Filename)
}

func TestNotifyOrderSent_SinDireccion(t *testing.T) {
	m, sent := newTestMailer(Config{Host: "smtp.example.com", Port: 25}, nil)
	require.NoError(t, m.NotifyOrderSent(context.Background(), order(), nil))
	assert.Empty(t, *sent)
}

func TestNotifyOrderSent_ErrorSMTP(t *testing.T) {
	m, sent := newTestMailer(Config{
		Host: "smtp.example.com", Port: 25, From: "magazzino@example.com",
		Suppliers: map[string]string{"DORECA": "ordini@doreca.it"},
	}, errors.New("connection refused"))

	err := m.NotifyOrderSent(context.Background(), order(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ord_42")
	require.Len(t, *sent, 1)
	assert.Nil(t, (*sent)[0].auth, "sin usuario no hay auth")
	assert.Empty(t, (*sent)[0].e.Attachments)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disco lleno") }

func TestCompose_ErrorAdjunto(t *testing.T) {
	m := NewMailer(Config{From: "magazzino@example.com"})
	e, err := m.compose(order(), "ordini@doreca.it", failingReader{})
	require.Error(t, err)
	assert.Nil(t, e)
	assert.Contains(t, err.Error(), "ord_42")
	assert.Contains(t, err.Error(), "disco lleno")
}

func TestParseSupplierEmails(t *testing.T) {
	got := ParseSupplierEmails(" doreca = a@doreca.it ,ALPORI=b@alpori.it,,malformado,VARI=")
	assert.Equal(t, map[string]string{"DORECA": "a@doreca.it", "ALPORI": "b@alpori.it"}, got)
	assert.Empty(t, ParseSupplierEmails(""))
}
