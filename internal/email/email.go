// Package email provides email sending functionality
package email

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"log"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Config holds email configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

// Service handles email sending
type Service struct {
	config    *Config
	templates map[string]*template.Template
	queue     atomic.Pointer[Queue]
}

// NewService creates a new email service
func NewService(config *Config) *Service {
	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
	}
	s.loadTemplates()
	return s
}

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// IsConfigured reports whether an SMTP host is set.
func (s *Service) IsConfigured() bool {
	return s != nil && s.config.Host != ""
}

// Send delivers an email over SMTP. Recipients or headers carrying line breaks are rejected.
func (s *Service) Send(email *Email) error {
	if !s.IsConfigured() {
		log.Println("[Email] Not configured, skipping send")
		return nil
	}

	msg, err := s.buildMessage(email)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	if !s.config.UseTLS {
		return smtp.SendMail(addr, auth, s.config.From, email.To, msg)
	}
	return s.sendTLS(addr, auth, email.To, msg)
}

// buildMessage renders the RFC 5322 message. Subject and sender name are kept
// on a single header line.
func (s *Service) buildMessage(email *Email) ([]byte, error) {
	if len(email.To) == 0 {
		return nil, errors.New("email has no recipients")
	}
	for _, rcpt := range email.To {
		if strings.ContainsAny(rcpt, "\r\n") {
			return nil, fmt.Errorf("invalid recipient %q", rcpt)
		}
	}
	if strings.ContainsAny(s.config.From, "\r\n") {
		return nil, fmt.Errorf("invalid sender %q", s.config.From)
	}

	from := mail.Address{Name: singleLine(s.config.FromName), Address: s.config.From}
	contentType, body := "text/plain", email.Body
	if email.HTMLBody != "" {
		contentType, body = "text/html", email.HTMLBody
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from.String())
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(email.To, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", singleLine(email.Subject)))
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: %s; charset=UTF-8\r\n\r\n", contentType)
	msg.WriteString(body)
	return msg.Bytes(), nil
}

func (s *Service) sendTLS(addr string, auth smtp.Auth, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return fmt.Errorf("TLS dial error: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("SMTP client error: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("auth error: %w", err)
	}
	if err := client.Mail(s.config.From); err != nil {
		return fmt.Errorf("mail error: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data error: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close error: %w", err)
	}
	return client.Quit()
}

// singleLine collapses CR, LF and surrounding whitespace runs into single spaces.
func singleLine(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// Render executes a named template.
func (s *Service) Render(templateName string, data interface{}) (string, error) {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

// SendWithTemplate sends an email using a template
func (s *Service) SendWithTemplate(to []string, subject, templateName string, data interface{}) error {
	body, err := s.Render(templateName, data)
	if err != nil {
		return err
	}
	return s.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: body,
	})
}

// deliver hands the email to the queue when one is running, otherwise sends it inline.
func (s *Service) deliver(to []string, subject, templateName string, data interface{}) error {
	if !s.IsConfigured() {
		return nil
	}
	if q := s.queue.Load(); q != nil {
		q.Enqueue(to, subject, templateName, data)
		return nil
	}
	return s.SendWithTemplate(to, subject, templateName, data)
}

// ============================================
// Async Email Queue (simple in-memory)
// ============================================

// Queue sends templated emails from background workers.
type Queue struct {
	service *Service
	queue   chan *queuedEmail
	done    chan struct{}
}

type queuedEmail struct {
	to           []string
	subject      string
	templateName string
	data         interface{}
	retries      int
}

// StartQueue routes every templated email through workers goroutines.
func (s *Service) StartQueue(workers int) {
	q := &Queue{
		service: s,
		queue:   make(chan *queuedEmail, 1000),
		done:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		go q.worker()
	}
	s.queue.Store(q)
}

// StopQueue stops the workers. Emails still queued are dropped.
func (s *Service) StopQueue() {
	if q := s.queue.Swap(nil); q != nil {
		close(q.done)
	}
}

func (q *Queue) worker() {
	for {
		select {
		case email := <-q.queue:
			err := q.service.SendWithTemplate(email.to, email.subject, email.templateName, email.data)
			if err == nil {
				continue
			}
			log.Printf("[Email] Send error (%s): %v", email.templateName, err)
			if email.retries < 3 {
				email.retries++
				time.Sleep(time.Second * time.Duration(email.retries*2))
				q.push(email)
			}
		case <-q.done:
			return
		}
	}
}

// Enqueue adds an email to the queue. When the queue is full the email is dropped.
func (q *Queue) Enqueue(to []string, subject, templateName string, data interface{}) {
	q.push(&queuedEmail{to: to, subject: subject, templateName: templateName, data: data})
}

func (q *Queue) push(email *queuedEmail) {
	select {
	case q.queue <- email:
	default:
		log.Printf("[Email] ⚠️ Queue full, dropping %s to %v", email.templateName, email.to)
	}
}
