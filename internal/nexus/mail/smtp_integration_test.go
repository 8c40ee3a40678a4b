package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestSMTPMailerAgainstMailpit delivers a real message to a Mailpit container
// and reads it back through Mailpit's HTTP API.
func TestSMTPMailerAgainstMailpit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "axllent/mailpit:v1.21",
			ExposedPorts: []string{"1025/tcp", "8025/tcp"},
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8025/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	smtpPort, err := container.MappedPort(ctx, "1025")
	require.NoError(t, err)
	apiPort, err := container.MappedPort(ctx, "8025")
	require.NoError(t, err)

	tmpls, err := LoadTemplates()
	require.NoError(t, err)
	msg, err := tmpls.Invitation("new.user@acme.com", InvitationData{
		OrganizationName: "Acme Corp",
		RoleLabel:        "end user",
		Link:             "http://localhost:3000/login?token=t0k3n&email=new.user%40acme.com",
		ExpiresInDays:    7,
	})
	require.NoError(t, err)

	mailer := NewSMTPMailer(SMTPConfig{Host: host, Port: smtpPort.Int()}, Sender{Address: "noreply@nexus.local", Name: "Nexus"})
	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	require.NoError(t, mailer.Send(sendCtx, msg))

	var inbox struct {
		Messages []struct {
			Subject string `json:"Subject"`
			To      []struct {
				Address string `json:"Address"`
			} `json:"To"`
		} `json:"messages"`
	}
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s:%s/api/v1/messages", host, apiPort.Port()))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(&inbox); err != nil {
			return false
		}
		return len(inbox.Messages) == 1
	}, 10*time.Second, 200*time.Millisecond)

	require.Equal(t, "Invitation to join Acme Corp on Nexus", inbox.Messages[0].Subject)
	require.Equal(t, "new.user@acme.com", inbox.Messages[0].To[0].Address)
}
