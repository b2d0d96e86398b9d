package models

import "time"

// ChatChannel enumerates the conversational channels that keep a message log
type ChatChannel string

const (
	ChatChannelWhatsApp ChatChannel = "whatsapp"
	ChatChannelCall     ChatChannel = "call"
	ChatChannelSMS      ChatChannel = "sms"
	ChatChannelEmail    ChatChannel = "email"
)

// ChatDirection marks who produced a message
type ChatDirection string

const (
	ChatDirectionInbound  ChatDirection = "inbound"
	ChatDirectionOutbound ChatDirection = "outbound"
)

// ChatMessage is one message exchanged with a debtor on one channel.
// Rows are append-only; creation order defines the agent's context window.
// Failed send attempts are recorded too, with Success=false and a
// diagnostic body.
type ChatMessage struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	CompanyID  uint          `gorm:"not null;index:idx_chat_messages_company_id" json:"company_id"`
	Channel    ChatChannel   `gorm:"type:chat_channel;not null;index:idx_chat_messages_channel" json:"channel"`
	Direction  ChatDirection `gorm:"type:chat_direction;not null" json:"direction"`
	FromNumber string        `gorm:"size:20;not null;index:idx_chat_messages_from_number" json:"from_number"`
	ToNumber   string        `gorm:"size:20;not null;index:idx_chat_messages_to_number" json:"to_number"`
	Body       string        `gorm:"type:text;not null" json:"body"`
	ImageURL   *string       `gorm:"size:512" json:"image_url,omitempty"`
	ImageMime  *string       `gorm:"size:64" json:"image_mime,omitempty"`
	Success    bool          `gorm:"not null;default:true" json:"success"`
	CreatedAt  time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_chat_messages_created_at" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

// ChatMessageFilter provides filter fields for repository queries
type ChatMessageFilter struct {
	ID            *uint
	CompanyID     *uint
	Channel       *ChatChannel
	Direction     *ChatDirection
	FromNumber    *string
	ToNumber      *string
	Success       *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
