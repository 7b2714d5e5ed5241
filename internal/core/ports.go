package core

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/wikibot/internal/wiki"
)

// Message is an inbound chat message.
type Message struct {
	ID         snowflake.ID
	ChannelID  snowflake.ID
	GuildID    snowflake.ID
	AuthorID   snowflake.ID
	AuthorName string
	AuthorBot  bool
	// Roles holds the names of the author's roles in the guild.
	Roles   []string
	Content string
}

// Reaction is a reaction added to a message.
type Reaction struct {
	MessageID snowflake.ID
	ChannelID snowflake.ID
	GuildID   snowflake.ID
	UserID    snowflake.ID
	Emoji     string
}

// Chat is the chat service the bot talks through.
type Chat interface {
	SendMessage(channelID snowflake.ID, content string) (snowflake.ID, error)
	SendEmbed(channelID snowflake.ID, embed *discordgo.MessageEmbed) (snowflake.ID, error)
	// EditMessage replaces the content and embed of a message sent by the bot.
	// A nil embed removes any embed.
	EditMessage(channelID, messageID snowflake.ID, content string, embed *discordgo.MessageEmbed) error
	AddReaction(channelID, messageID snowflake.ID, emoji string) error
	RemoveReaction(channelID, messageID snowflake.ID, emoji string, userID snowflake.ID) error
	DeleteMessage(channelID, messageID snowflake.ID) error
	// ChannelPermissions returns the bot's own permission bits in a channel.
	ChannelPermissions(channelID snowflake.ID) (int64, error)
}

// Wiki is the MediaWiki site the bot operates on. All calls block on
// network I/O.
type Wiki interface {
	PageExists(ctx context.Context, title string) (bool, error)
	PageText(ctx context.Context, title string) (string, error)
	EditPage(ctx context.Context, title, text, summary string) (wiki.EditResult, error)
	MovePage(ctx context.Context, from, to, reason string, leaveRedirect bool) (wiki.MoveResult, error)
	DeletePage(ctx context.Context, title, reason string) (wiki.DeleteResult, error)
	UploadByURL(ctx context.Context, filename, fileURL, comment string) (wiki.UploadResult, error)
	InvokeModule(ctx context.Context, module, expression string) (wiki.ModuleOutput, error)
	PageURL(title string) string
}
