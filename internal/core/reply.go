package core

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/wikibot/internal/wiki"
)

// Embed colors for responses.
const (
	ColorSuccess = 0x2ECC71
	ColorWarning = 0xFFFF00
	ColorError   = 0xFF0000
)

// GenericFailure is the reply to a command that failed unexpectedly.
const GenericFailure = "An error occurred while processing your command."

// SendText sends content to channelID and logs a failure.
func SendText(chat Chat, channelID snowflake.ID, content string) {
	if _, err := chat.SendMessage(channelID, content); err != nil {
		slog.Error("failed to send message", "channel_id", channelID, "error", err)
	}
}

// SendEmbed sends a titled embed to channelID and logs a failure.
func SendEmbed(chat Chat, channelID snowflake.ID, title, description string, color int) {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
	}
	if _, err := chat.SendEmbed(channelID, embed); err != nil {
		slog.Error("failed to send embed", "channel_id", channelID, "error", err)
	}
}

// FailureMessage describes err for the user. activity completes the phrase
// "An error occurred while ...". Wiki API errors include their code and info.
func FailureMessage(activity string, err error) string {
	var apiErr *wiki.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("An error occurred while %s: `%s`: %s", activity, apiErr.Code, apiErr.Info)
	}
	return fmt.Sprintf("An error occurred while %s.", activity)
}

// UsageMessage is the reply to a command invoked with the wrong arguments.
func UsageMessage(cmd *Command, prefix string) string {
	return fmt.Sprintf("Usage: `%s`", cmd.UsageLine(prefix))
}
