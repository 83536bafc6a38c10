// Package comms implements the reminder rule engine and the outbound message
// records it produces.
//
// The core performs no real delivery. A message is "sent" when its content
// passed channel validation and was appended to the store; the Dispatcher is
// a best-effort hook for opening a deep link and its outcome never changes
// message status
package comms

import (
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	perr "fixqueue/internal/platform/errors"

	"fixqueue/internal/core/repair"
)

// Channel is an outbound message channel
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// Per-channel content length caps. Email has no practical cap here
const (
	MaxSMSLen      = 160
	MaxWhatsAppLen = 4096
)

// Message statuses. Status reflects validation, not delivery confirmation
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Template is a reusable message body with {{var}} placeholders
type Template struct {
	ID      string  `json:"id"`
	Channel Channel `json:"channel"`
	Body    string  `json:"body"`
}

// Rule pairs a repair stage and an inactivity threshold with a template
type Rule struct {
	ID         string       `json:"id"`
	Stage      repair.Stage `json:"stage"`
	AfterHours float64      `json:"afterHours"`
	TemplateID string       `json:"templateId"`
}

// Message is one outbound communication record
type Message struct {
	ID       string    `json:"id"`
	RepairID string    `json:"repairId"`
	RuleID   string    `json:"ruleId,omitempty"`
	Channel  Channel   `json:"channel"`
	Body     string    `json:"body"`
	Status   string    `json:"status"`
	Error    string    `json:"error,omitempty"`
	At       time.Time `json:"at"`
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// ExpandTemplate substitutes {{var}} placeholders from vars. Unresolved
// placeholders expand to the empty string, never to the literal placeholder
func ExpandTemplate(body string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(body, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		return vars[name]
	})
}

// Vars builds the substitution set for one repair
func Vars(o repair.Order) map[string]string {
	return map[string]string{
		"id":      o.ID,
		"name":    o.CustomerName,
		"device":  o.DeviceModel,
		"issue":   o.IssueDescription,
		"stage":   string(o.Stage),
		"urgency": strconv.Itoa(o.Urgency),
	}
}

// ValidateContent enforces the channel's content constraints
func ValidateContent(ch Channel, content string) error {
	if content == "" {
		return perr.Validationf("content must not be empty")
	}
	switch ch {
	case ChannelSMS:
		if len([]rune(content)) > MaxSMSLen {
			return perr.Validationf("sms content exceeds %d characters", MaxSMSLen)
		}
	case ChannelWhatsApp:
		if len([]rune(content)) > MaxWhatsAppLen {
			return perr.Validationf("whatsapp content exceeds %d characters", MaxWhatsAppLen)
		}
	case ChannelEmail:
		// no length cap
	default:
		return perr.Validationf("unknown channel %q", ch)
	}
	return nil
}

// Store is an append-only in-memory message log. Not goroutine-safe; the
// owning service synchronizes access
type Store struct {
	messages []Message
	sent     map[string]struct{} // ruleID|repairID pairs with a sent message
}

// NewStore returns an empty message log
func NewStore() *Store {
	return &Store{sent: map[string]struct{}{}}
}

// Append records a message. Only sent messages feed the dedupe index
func (s *Store) Append(m Message) {
	s.messages = append(s.messages, m)
	if m.Status == StatusSent && m.RuleID != "" {
		s.sent[m.RuleID+"|"+m.RepairID] = struct{}{}
	}
}

// Messages returns a copy of the log in append order
func (s *Store) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Sent reports whether a sent message exists for this rule/repair pair
func (s *Store) Sent(ruleID, repairID string) bool {
	_, ok := s.sent[ruleID+"|"+repairID]
	return ok
}

// Dispatcher is the best-effort delivery hook. Implementations must not
// block on external systems; errors are advisory only
type Dispatcher interface {
	Dispatch(m Message) error
}

// NopDispatcher discards every message
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(Message) error { return nil }

// URLDispatcher builds a channel deep link and hands it to Open. The default
// opener discards the link, keeping the core free of real I/O
type URLDispatcher struct {
	Open func(link string) error
}

func (d URLDispatcher) Dispatch(m Message) error {
	if d.Open == nil {
		return nil
	}
	return d.Open(DeepLink(m.Channel, m.Body))
}

// DeepLink renders the client-side URI for a channel and body
func DeepLink(ch Channel, body string) string {
	q := url.QueryEscape(body)
	switch ch {
	case ChannelEmail:
		return "mailto:?body=" + q
	case ChannelSMS:
		return "sms:?body=" + q
	case ChannelWhatsApp:
		return "https://wa.me/?text=" + q
	default:
		return ""
	}
}

// SendMessage validates content, records the resulting message in store, and
// fires the dispatcher for sent messages. The returned message mirrors what
// was stored; a validation failure yields a failed message, not an error
func SendMessage(store *Store, d Dispatcher, repairID string, ch Channel, content string, now time.Time) Message {
	return sendRuleMessage(store, d, "", repairID, ch, content, now)
}

func sendRuleMessage(store *Store, d Dispatcher, ruleID, repairID string, ch Channel, content string, now time.Time) Message {
	m := Message{
		ID:       uuid.NewString(),
		RepairID: repairID,
		RuleID:   ruleID,
		Channel:  ch,
		Body:     content,
		Status:   StatusSent,
		At:       now,
	}
	if err := ValidateContent(ch, content); err != nil {
		m.Status = StatusFailed
		m.Error = err.Error()
	}
	store.Append(m)
	if m.Status == StatusSent && d != nil {
		_ = d.Dispatch(m) // fire and forget
	}
	return m
}

// ScheduleOptions tunes a reminder evaluation pass
type ScheduleOptions struct {
	// Dedupe skips rule/repair pairs the store already holds a sent message
	// for. Off by default: each pass re-evaluates everything and the caller
	// controls recurrence
	Dedupe bool

	Dispatcher Dispatcher
}

// ScheduleReminders runs one evaluation pass: every rule against every
// repair whose stage matches and whose inactivity meets the rule's
// threshold. Rules referencing a missing template are skipped. Returns the
// messages produced this pass, already recorded in store
func ScheduleReminders(
	rules []Rule,
	repairs []repair.Order,
	templates []Template,
	store *Store,
	opts ScheduleOptions,
	now time.Time,
) []Message {
	byID := make(map[string]Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	var out []Message
	for _, rule := range rules {
		tmpl, ok := byID[rule.TemplateID]
		if !ok {
			continue
		}
		for _, o := range repairs {
			if o.Stage != rule.Stage {
				continue
			}
			if o.InactivityHours(now) < rule.AfterHours {
				continue
			}
			if opts.Dedupe && store.Sent(rule.ID, o.ID) {
				continue
			}
			body := ExpandTemplate(tmpl.Body, Vars(o))
			out = append(out, sendRuleMessage(store, opts.Dispatcher, rule.ID, o.ID, tmpl.Channel, body, now))
		}
	}
	return out
}
