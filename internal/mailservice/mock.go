package mailservice

import (
	"github.com/go-mail/mail/v2"
)

// mockDialer records outgoing messages instead of dialing an SMTP server.
type mockDialer struct {
	sent []*mail.Message
	err  error
}

func (d *mockDialer) DialAndSend(m ...*mail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}
