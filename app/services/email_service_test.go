package services_test

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/cobraops/cobra-core/app/services"
	"github.com/cobraops/cobra-core/config"
	"github.com/stretchr/testify/require"
)

// A server that accepts the connection but never sends a greeting must not
// hang the caller past its deadline.
func TestSendEmailHonorsContextDeadline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		// Hold the connection open silently until the client gives up
		buf := make([]byte, 1)
		_, _ = conn.Read(buf)
	}()

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	svc := services.NewSMTPEmailService(&config.EmailConfig{
		SMTPHost:  host,
		SMTPPort:  port,
		FromEmail: "cobranzas@cobraops.io",
		FromName:  "Cobra",
		Timeout:   10 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = svc.SendEmail(ctx, "deudor@example.com", "Aviso", "hola")
	require.Error(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
}
