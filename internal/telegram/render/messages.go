package render

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/futig/ragdesk/internal/entity"
)

const (
	MsgWelcome = `👋 Hi! Ask me anything about the indexed documents.

Send your question as a message and I will answer with the sources I used.
Use /help to see what else I can do.`

	MsgHelp = `🤖 <b>Bot commands:</b>

/start - Show the welcome message
/help - Show this help
/export &lt;format&gt; - Download the last answer (markdown, docx, pdf, html)

<b>How it works:</b>
1. Send a question as a regular message
2. Wait while I search the knowledge base
3. Read the answer and the sources it is based on
4. Use the buttons under the sources to download the answer`

	MsgExportReady = `📎 Here is your answer.`

	MsgRateLimitFirst  = `⚠️ Too many requests. Please wait a moment.`
	MsgRateLimitSecond = `⚠️ Request limit exceeded. Wait about 30 seconds before trying again.`
	MsgRateLimitFinal  = `🛑 You are sending requests too often. Please wait a minute.`

	// Errors
	ErrGeneric            = `❌ Something went wrong. Try again or send /start`
	ErrUnknownCommand     = `❌ Unknown command. Send /help`
	ErrSessionNotFound    = `❌ This chat has no answers yet. Ask a question first.`
	ErrNothingToExport    = `❌ There is no answer to download yet. Ask a question first.`
	ErrUnsupportedFormat  = `❌ Unknown format. Use markdown, docx, pdf or html.`
	ErrNetworkIssue       = `❌ Connection problem. Try again a bit later.`
	ErrServiceUnavailable = `❌ The service is temporarily unavailable. Try again in a couple of minutes.`
	ErrTimeout            = `❌ The operation took too long. Try again.`
)

// ClassifyError analyzes an error and returns an appropriate user-friendly message
func ClassifyError(err error) string {
	if err == nil {
		return ErrGeneric
	}

	switch {
	case errors.Is(err, entity.ErrNothingToExport):
		return ErrNothingToExport
	case errors.Is(err, entity.ErrUnsupportedFormat), errors.Is(err, entity.ErrMissingField):
		return ErrUnsupportedFormat
	case errors.Is(err, entity.ErrSessionNotFound):
		return ErrSessionNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return ErrServiceUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkIssue
	}

	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "connection refused"):
		return ErrServiceUnavailable
	case strings.Contains(errMsg, "timeout"):
		return ErrTimeout
	case strings.Contains(errMsg, "unavailable"):
		return ErrServiceUnavailable
	}

	return ErrGeneric
}
