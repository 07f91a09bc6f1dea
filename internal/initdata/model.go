package initdata

import "time"

type ChatType string

const (
	ChatTypeSender     ChatType = "sender"
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

// Known reports whether t is one of the chat types the platform sends.
func (t ChatType) Known() bool {
	switch t {
	case ChatTypeSender, ChatTypePrivate, ChatTypeGroup, ChatTypeSupergroup, ChatTypeChannel:
		return true
	}
	return false
}

// User describes a Telegram user or bot.
type User struct {
	ID                    int64  `json:"id"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name,omitempty"`
	Username              string `json:"username,omitempty"`
	LanguageCode          string `json:"language_code,omitempty"`
	IsPremium             bool   `json:"is_premium,omitempty"`
	IsBot                 bool   `json:"is_bot,omitempty"`
	AddedToAttachmentMenu bool   `json:"added_to_attachment_menu,omitempty"`
	AllowsWriteToPm       bool   `json:"allows_write_to_pm,omitempty"`
	PhotoURL              string `json:"photo_url,omitempty"`
}

// Chat is the group, supergroup or channel a mini app was launched from via
// the attachment menu.
type Chat struct {
	ID       int64    `json:"id"`
	Type     ChatType `json:"type"`
	Title    string   `json:"title"`
	Username string   `json:"username,omitempty"`
	PhotoURL string   `json:"photo_url,omitempty"`
}

// InitData is the decoded payload. Optional strings are empty when absent.
type InitData struct {
	AuthDate     time.Time `json:"auth_date"`
	Hash         string    `json:"hash"`
	Signature    string    `json:"signature,omitempty"`
	QueryID      string    `json:"query_id,omitempty"`
	StartParam   string    `json:"start_param,omitempty"`
	ChatType     ChatType  `json:"chat_type,omitempty"`
	ChatInstance string    `json:"chat_instance,omitempty"`
	// CanSendAfter is in seconds; nil when the field was not sent.
	CanSendAfter *int64 `json:"can_send_after,omitempty"`
	User         *User  `json:"user,omitempty"`
	Receiver     *User  `json:"receiver,omitempty"`
	Chat         *Chat  `json:"chat,omitempty"`
}

// CanSendAt is the moment answerWebAppQuery becomes available, if known.
func (d *InitData) CanSendAt() (time.Time, bool) {
	if d.CanSendAfter == nil {
		return time.Time{}, false
	}
	return d.AuthDate.Add(time.Duration(*d.CanSendAfter) * time.Second), true
}
