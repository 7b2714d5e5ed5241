package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// Session is the subset of *discordgo.Session the chat client uses.
// It enables testing without a live Discord connection.
type Session interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(data *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	MessageReactionRemove(channelID, messageID, emojiID, userID string, options ...discordgo.RequestOption) error
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
}

// DiscordChat implements core.Chat over a Discord session.
type DiscordChat struct {
	session Session
	// selfID returns the bot's own user ID once the session is open.
	selfID func() string
}

// NewDiscordChat creates a DiscordChat.
func NewDiscordChat(s Session, selfID func() string) *DiscordChat {
	return &DiscordChat{
		session: s,
		selfID:  selfID,
	}
}

func parseMessageID(m *discordgo.Message) (snowflake.ID, error) {
	return snowflake.Parse(m.ID)
}

// SendMessage sends a text message.
func (c *DiscordChat) SendMessage(channelID snowflake.ID, content string) (snowflake.ID, error) {
	m, err := c.session.ChannelMessageSend(channelID.String(), content)
	if err != nil {
		return 0, err
	}
	return parseMessageID(m)
}

// SendEmbed sends an embed message.
func (c *DiscordChat) SendEmbed(channelID snowflake.ID, embed *discordgo.MessageEmbed) (snowflake.ID, error) {
	m, err := c.session.ChannelMessageSendEmbed(channelID.String(), embed)
	if err != nil {
		return 0, err
	}
	return parseMessageID(m)
}

// EditMessage replaces the content and embed of a message.
func (c *DiscordChat) EditMessage(
	channelID, messageID snowflake.ID,
	content string,
	embed *discordgo.MessageEmbed,
) error {
	edit := discordgo.NewMessageEdit(channelID.String(), messageID.String())
	edit.Content = &content

	embeds := []*discordgo.MessageEmbed{}
	if embed != nil {
		embeds = append(embeds, embed)
	}
	edit.Embeds = &embeds

	_, err := c.session.ChannelMessageEditComplex(edit)
	return err
}

// AddReaction reacts to a message as the bot.
func (c *DiscordChat) AddReaction(channelID, messageID snowflake.ID, emoji string) error {
	return c.session.MessageReactionAdd(channelID.String(), messageID.String(), emoji)
}

// RemoveReaction removes a user's reaction from a message.
func (c *DiscordChat) RemoveReaction(channelID, messageID snowflake.ID, emoji string, userID snowflake.ID) error {
	return c.session.MessageReactionRemove(channelID.String(), messageID.String(), emoji, userID.String())
}

// DeleteMessage deletes a message.
func (c *DiscordChat) DeleteMessage(channelID, messageID snowflake.ID) error {
	return c.session.ChannelMessageDelete(channelID.String(), messageID.String())
}

// ChannelPermissions returns the bot's permissions in a channel.
func (c *DiscordChat) ChannelPermissions(channelID snowflake.ID) (int64, error) {
	return c.session.UserChannelPermissions(c.selfID(), channelID.String())
}
