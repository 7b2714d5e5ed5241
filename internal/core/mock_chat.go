package core

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// SentMessage is a message recorded by MockChat.
type SentMessage struct {
	ID        snowflake.ID
	ChannelID snowflake.ID
	Content   string
	Embed     *discordgo.MessageEmbed
}

// ReactionCall is a reaction change recorded by MockChat.
type ReactionCall struct {
	ChannelID snowflake.ID
	MessageID snowflake.ID
	Emoji     string
	UserID    snowflake.ID
}

// MockChat is a test double for Chat.
type MockChat struct {
	// Permissions is returned by ChannelPermissions.
	Permissions int64
	SendErr     error
	ReactionErr error
	// Now stamps the IDs of sent messages. Defaults to time.Now.
	Now func() time.Time

	mu      sync.Mutex
	seq     int64
	sent    []SentMessage
	edits   []SentMessage
	added   []ReactionCall
	removed []ReactionCall
	deleted []snowflake.ID
}

func (m *MockChat) nextID() snowflake.ID {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	m.seq++
	return snowflake.New(now()) + snowflake.ID(m.seq)
}

// SendMessage records a text message.
func (m *MockChat) SendMessage(channelID snowflake.ID, content string) (snowflake.ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return 0, m.SendErr
	}
	id := m.nextID()
	m.sent = append(m.sent, SentMessage{ID: id, ChannelID: channelID, Content: content})
	return id, nil
}

// SendEmbed records an embed message.
func (m *MockChat) SendEmbed(channelID snowflake.ID, embed *discordgo.MessageEmbed) (snowflake.ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return 0, m.SendErr
	}
	id := m.nextID()
	m.sent = append(m.sent, SentMessage{ID: id, ChannelID: channelID, Embed: embed})
	return id, nil
}

// EditMessage records an edit.
func (m *MockChat) EditMessage(channelID, messageID snowflake.ID, content string, embed *discordgo.MessageEmbed) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append(m.edits, SentMessage{ID: messageID, ChannelID: channelID, Content: content, Embed: embed})
	return nil
}

// AddReaction records an added reaction.
func (m *MockChat) AddReaction(channelID, messageID snowflake.ID, emoji string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReactionErr != nil {
		return m.ReactionErr
	}
	m.added = append(m.added, ReactionCall{ChannelID: channelID, MessageID: messageID, Emoji: emoji})
	return nil
}

// RemoveReaction records a removed reaction.
func (m *MockChat) RemoveReaction(channelID, messageID snowflake.ID, emoji string, userID snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, ReactionCall{
		ChannelID: channelID,
		MessageID: messageID,
		Emoji:     emoji,
		UserID:    userID,
	})
	return nil
}

// DeleteMessage records a deletion.
func (m *MockChat) DeleteMessage(channelID, messageID snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, messageID)
	return nil
}

// ChannelPermissions returns Permissions.
func (m *MockChat) ChannelPermissions(channelID snowflake.ID) (int64, error) {
	return m.Permissions, nil
}

// Sent returns the recorded messages.
func (m *MockChat) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMessage(nil), m.sent...)
}

// LastSent returns the most recent message, or false if none was sent.
func (m *MockChat) LastSent() (SentMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return SentMessage{}, false
	}
	return m.sent[len(m.sent)-1], true
}

// Edits returns the recorded edits.
func (m *MockChat) Edits() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMessage(nil), m.edits...)
}

// AddedReactions returns the recorded added reactions.
func (m *MockChat) AddedReactions() []ReactionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ReactionCall(nil), m.added...)
}

// RemovedReactions returns the recorded removed reactions.
func (m *MockChat) RemovedReactions() []ReactionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ReactionCall(nil), m.removed...)
}

// Deleted returns the IDs of deleted messages.
func (m *MockChat) Deleted() []snowflake.ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]snowflake.ID(nil), m.deleted...)
}
