package bot

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/wikibot/internal/core"
	"github.com/sglre6355/wikibot/internal/metrics"
)

// RoleResolver looks up guild roles. *discordgo.State implements it.
type RoleResolver interface {
	Role(guildID, roleID string) (*discordgo.Role, error)
}

// parseOptionalID parses id, treating "" as zero.
func parseOptionalID(id string) (snowflake.ID, error) {
	if id == "" {
		return 0, nil
	}
	return snowflake.Parse(id)
}

// toMessage converts a gateway message to a core.Message with the author's
// role names resolved through roles.
func toMessage(m *discordgo.MessageCreate, roles RoleResolver) (*core.Message, error) {
	if m.Message == nil || m.Author == nil {
		return nil, fmt.Errorf("message without author")
	}

	id, err := snowflake.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid message ID: %w", err)
	}
	channelID, err := snowflake.Parse(m.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("invalid channel ID: %w", err)
	}
	guildID, err := parseOptionalID(m.GuildID)
	if err != nil {
		return nil, fmt.Errorf("invalid guild ID: %w", err)
	}
	authorID, err := snowflake.Parse(m.Author.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID: %w", err)
	}

	msg := &core.Message{
		ID:         id,
		ChannelID:  channelID,
		GuildID:    guildID,
		AuthorID:   authorID,
		AuthorName: m.Author.Username,
		AuthorBot:  m.Author.Bot,
		Content:    m.Content,
	}

	if m.Member != nil && roles != nil {
		for _, roleID := range m.Member.Roles {
			role, err := roles.Role(m.GuildID, roleID)
			if err != nil {
				slog.Debug("failed to resolve role", "guild_id", m.GuildID, "role_id", roleID, "error", err)
				continue
			}
			msg.Roles = append(msg.Roles, role.Name)
		}
	}

	return msg, nil
}

// toReaction converts a gateway reaction to a core.Reaction.
func toReaction(r *discordgo.MessageReactionAdd) (*core.Reaction, error) {
	if r.MessageReaction == nil {
		return nil, fmt.Errorf("reaction without payload")
	}

	messageID, err := snowflake.Parse(r.MessageID)
	if err != nil {
		return nil, fmt.Errorf("invalid message ID: %w", err)
	}
	channelID, err := snowflake.Parse(r.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("invalid channel ID: %w", err)
	}
	guildID, err := parseOptionalID(r.GuildID)
	if err != nil {
		return nil, fmt.Errorf("invalid guild ID: %w", err)
	}
	userID, err := snowflake.Parse(r.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	return &core.Reaction{
		MessageID: messageID,
		ChannelID: channelID,
		GuildID:   guildID,
		UserID:    userID,
		Emoji:     r.Emoji.APIName(),
	}, nil
}

// recoverPanic logs and counts a panic in an event handler so the event
// stream keeps going. It must be deferred.
func recoverPanic(handler string) {
	if r := recover(); r != nil {
		metrics.PanicsRecovered.WithLabelValues(handler).Inc()
		slog.Error("recovered panic in event handler",
			"handler", handler,
			"panic", r,
			"stack", string(debug.Stack()),
		)
	}
}
