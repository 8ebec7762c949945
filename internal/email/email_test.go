package email

import (
	"net"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTaskAssigned(t *testing.T) {
	s := NewService(&Config{})

	body, err := s.Render("task_assigned", TaskAssignedData{
		AssigneeName: "Grace",
		TaskTitle:    "Fix <login>",
		ProjectName:  "Launch",
		Priority:     "high",
		TaskURL:      "http://localhost:5173/tasks/3",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Hi Grace,")
	assert.Contains(t, body, "Fix &lt;login&gt;")
	assert.Contains(t, body, `class="priority-high"`)
	assert.NotContains(t, body, "Due Date:")
}

func TestRenderDueDateReminder(t *testing.T) {
	s := NewService(&Config{})

	body, err := s.Render("due_date_reminder", DueDateReminderData{
		UserName: "Alan",
		Tasks: []DueDateReminderTask{
			{TaskTitle: "Ship", ProjectName: "Launch", DaysRemaining: 0},
			{TaskTitle: "Review", ProjectName: "Launch", DaysRemaining: 2},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Due Today!")
	assert.Contains(t, body, "Due in 2 days")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := NewService(&Config{}).Render("nope", nil)
	assert.EqualError(t, err, "template not found: nope")
}

func TestUnconfiguredServiceSkipsSend(t *testing.T) {
	s := NewService(&Config{})
	assert.False(t, s.IsConfigured())
	assert.NoError(t, s.SendTaskAssigned("grace@example.com", TaskAssignedData{TaskTitle: "x"}))

	var nilSvc *Service
	assert.False(t, nilSvc.IsConfigured())
}

// smtpSink accepts a single SMTP session on loopback and records the DATA payload.
func smtpSink(t *testing.T) (host string, port int, data <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		tp := textproto.NewConn(conn)
		tp.PrintfLine("220 localhost ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			cmd := strings.ToUpper(line)
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				tp.PrintfLine("250-localhost")
				tp.PrintfLine("250 AUTH PLAIN")
			case strings.HasPrefix(cmd, "AUTH"):
				tp.PrintfLine("235 accepted")
			case cmd == "DATA":
				tp.PrintfLine("354 go ahead")
				body, _ := tp.ReadDotLines()
				out <- strings.Join(body, "\r\n")
				tp.PrintfLine("250 queued")
			case cmd == "QUIT":
				tp.PrintfLine("221 bye")
				return
			default:
				tp.PrintfLine("250 ok")
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port, out
}

func headerLines(t *testing.T, msg string) []string {
	t.Helper()
	head, _, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found, "message has no header/body separator")
	return strings.Split(head, "\r\n")
}

func TestSendKeepsTaskTitleInsideSubject(t *testing.T) {
	host, port, data := smtpSink(t)
	s := NewService(&Config{Host: host, Port: port, From: "noreply@synergysphere.dev", FromName: "SynergySphere"})

	err := s.SendTaskAssigned("grace@example.com", TaskAssignedData{
		AssigneeName: "Grace",
		TaskTitle:    "Hi\r\nBcc: someone@else.dev\r\nX-Extra: yes",
	})
	require.NoError(t, err)

	var msg string
	select {
	case msg = <-data:
	case <-time.After(2 * time.Second):
		t.Fatal("no message reached the server")
	}

	var subjects int
	for _, line := range headerLines(t, msg) {
		assert.False(t, strings.HasPrefix(line, "Bcc:"), line)
		assert.False(t, strings.HasPrefix(line, "X-Extra:"), line)
		if strings.HasPrefix(line, "Subject:") {
			subjects++
			assert.Contains(t, line, "Bcc: someone@else.dev X-Extra: yes")
		}
	}
	assert.Equal(t, 1, subjects)
}

func TestBuildMessage(t *testing.T) {
	s := NewService(&Config{Host: "smtp.example.com", From: "noreply@synergysphere.dev", FromName: "Synergy\nSphere"})

	t.Run("non-ascii subject is encoded", func(t *testing.T) {
		msg, err := s.buildMessage(&Email{To: []string{"a@example.com"}, Subject: "Tâche assignée", Body: "hello"})
		require.NoError(t, err)

		lines := headerLines(t, string(msg))
		assert.Contains(t, lines, "Subject: =?utf-8?q?T=C3=A2che_assign=C3=A9e?=")
		assert.Contains(t, lines, `From: "Synergy Sphere" <noreply@synergysphere.dev>`)
		assert.Contains(t, lines, "Content-Type: text/plain; charset=UTF-8")
	})

	t.Run("html body wins", func(t *testing.T) {
		msg, err := s.buildMessage(&Email{To: []string{"a@example.com"}, Subject: "x", Body: "plain", HTMLBody: "<p>rich</p>"})
		require.NoError(t, err)
		assert.Contains(t, string(msg), "Content-Type: text/html; charset=UTF-8\r\n\r\n<p>rich</p>")
	})

	t.Run("recipient with line break is rejected", func(t *testing.T) {
		_, err := s.buildMessage(&Email{To: []string{"a@example.com\r\nBcc: b@example.com"}, Subject: "x"})
		assert.ErrorContains(t, err, "invalid recipient")
	})

	t.Run("no recipients", func(t *testing.T) {
		_, err := s.buildMessage(&Email{Subject: "x"})
		assert.Error(t, err)
	})
}

func TestQueueStopWhileDelivering(t *testing.T) {
	s := NewService(&Config{Host: "127.0.0.1", Port: 1})
	s.StartQueue(1)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Sends fail against the closed port; only the queue handoff matters here.
			_ = s.deliver([]string{"a@example.com"}, "x", "task_assigned", TaskAssignedData{})
		}()
	}
	s.StopQueue()
	wg.Wait()

	assert.Nil(t, s.queue.Load())
	s.StopQueue()
}
