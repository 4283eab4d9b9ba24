package mailer

import (
	"sync"
)

// Email is a confirmation captured by MockMailer.
type Email struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer records emails instead of sending them.
type MockMailer struct {
	mu     sync.RWMutex
	emails []Email

	// Err, when set, is returned by Send and nothing is recorded.
	Err error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.emails = append(m.emails, Email{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

func (m *MockMailer) GetSentEmails() []Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emails := make([]Email, len(m.emails))
	copy(emails, m.emails)
	return emails
}

// SentTo returns the emails recorded for recipient.
func (m *MockMailer) SentTo(recipient string) []Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var emails []Email
	for _, e := range m.emails {
		if e.Recipient == recipient {
			emails = append(emails, e)
		}
	}

	return emails
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.emails = nil
}
