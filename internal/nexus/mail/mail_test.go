package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	netmail "net/mail"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInvitationTemplate(t *testing.T) {
	tmpls, err := LoadTemplates()
	require.NoError(t, err)

	msg, err := tmpls.Invitation("a@acme.com", InvitationData{
		OrganizationName: "Acme Corp",
		RoleLabel:        "end user",
		Link:             "http://localhost:3000/login?token=abc&email=a%40acme.com",
		ExpiresInDays:    7,
	})
	require.NoError(t, err)

	require.Equal(t, "a@acme.com", msg.To)
	require.Equal(t, "Invitation to join Acme Corp on Nexus", msg.Subject)
	require.Contains(t, msg.Text, "http://localhost:3000/login?token=abc&email=a%40acme.com")
	require.Contains(t, msg.Text, "7 days")
	require.Contains(t, msg.HTML, "Acme Corp")
	// html/template escapes the ampersand inside the attribute.
	require.Contains(t, msg.HTML, "token=abc&amp;email=a%40acme.com")

	_, err = tmpls.Render("missing", "x@y.z", "s", nil)
	require.Error(t, err)
}

func TestBuildMIME(t *testing.T) {
	raw := buildMIME(
		Sender{Address: "noreply@nexus.local", Name: "Nexus"},
		Message{To: "a@acme.com", Subject: "Hello", Text: "plain body", HTML: "<p>html body</p>"},
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	)

	parsed, err := netmail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, "Nexus <noreply@nexus.local>", parsed.Header.Get("From"))
	require.Equal(t, "Hello", parsed.Header.Get("Subject"))

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/alternative", mediaType)

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	var bodies []string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		enc, err := io.ReadAll(p)
		require.NoError(t, err)
		dec, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(enc)))
		require.NoError(t, err)
		bodies = append(bodies, string(dec))
	}
	require.Equal(t, []string{"plain body", "<p>html body</p>"}, bodies)
}

func TestNew(t *testing.T) {
	m, err := New(Config{Provider: ProviderLog})
	require.NoError(t, err)
	require.NoError(t, m.Send(context.Background(), Message{To: "a@acme.com"}))

	m, err = New(Config{Provider: ProviderSMTP, From: Sender{Address: "x@y.z"}})
	require.NoError(t, err)
	require.IsType(t, &SMTPMailer{}, m)

	_, err = New(Config{Provider: ProviderSendgrid})
	require.Error(t, err)

	_, err = New(Config{Provider: "carrier-pigeon"})
	require.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestSMTPMailerRequiresSender(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "127.0.0.1", Port: 1}, Sender{})
	require.Error(t, m.Send(context.Background(), Message{To: "a@acme.com"}))
}
