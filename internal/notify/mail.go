package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// MailConfig SMTP 配置
type MailConfig struct {
	Host     string
	Port     int
	UserName string
	Password string
	From     string
	To       []string
	// BaseURL is prefixed to notification URLs in the digest
	BaseURL string
}

// Sender is the part of gomail.Dialer used here
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailNotifier sends one digest mail per batch
// MailNotifier 每批通知发送一封汇总邮件
type MailNotifier struct {
	config MailConfig
	sender Sender
	logger *zap.Logger
}

func NewMailNotifier(c MailConfig, lg *zap.Logger) *MailNotifier {
	return NewMailNotifierWithSender(c, gomail.NewDialer(c.Host, c.Port, c.UserName, c.Password), lg)
}

// NewMailNotifierWithSender 使用自定义发送器创建
func NewMailNotifierWithSender(c MailConfig, s Sender, lg *zap.Logger) *MailNotifier {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &MailNotifier{config: c, sender: s, logger: lg}
}

func (m *MailNotifier) Name() string {
	return "mail"
}

func (m *MailNotifier) Notify(ctx context.Context, batch []Notification) error {
	if len(batch) == 0 {
		return nil
	}
	if len(m.config.To) == 0 {
		return errors.New("mail notifier has no recipients")
	}
	msg := m.BuildDigest(batch)
	if err := m.sender.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "send reminder digest")
	}
	m.logger.Info("reminder digest sent", zap.Int("count", len(batch)), zap.Strings("to", m.config.To))
	return nil
}

// BuildDigest 构建汇总邮件
func (m *MailNotifier) BuildDigest(batch []Notification) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", m.config.To...)
	msg.SetHeader("Subject", DigestSubject(len(batch)))

	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, n := range batch {
		fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a>: %s</li>\n",
			html.EscapeString(m.config.BaseURL+n.URL), html.EscapeString(n.Title), html.EscapeString(n.Body))
	}
	b.WriteString("</ul>")
	msg.SetBody("text/html", b.String())
	return msg
}

// DigestSubject 邮件主题
func DigestSubject(n int) string {
	if n == 1 {
		return "1 reminder due"
	}
	return fmt.Sprintf("%d reminders due", n)
}
