package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

func TestToMessage_SkipsUnknownRoles(t *testing.T) {
	m := gatewayMessage("hello", "10", "99")

	msg, err := toMessage(m, stubRoles{"10": "Editor"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(msg.Roles) != 1 || msg.Roles[0] != "Editor" {
		t.Errorf("expected roles [Editor], got %v", msg.Roles)
	}
	if msg.AuthorID != snowflake.ID(500) || msg.AuthorName != "alice" {
		t.Errorf("unexpected author %s %q", msg.AuthorID, msg.AuthorName)
	}
	if msg.GuildID != snowflake.ID(400) {
		t.Errorf("expected guild 400, got %s", msg.GuildID)
	}
}

func TestToMessage_DirectMessage(t *testing.T) {
	m := gatewayMessage("hello")
	m.GuildID = ""
	m.Member = nil

	msg, err := toMessage(m, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.GuildID != 0 {
		t.Errorf("expected zero guild, got %s", msg.GuildID)
	}
	if len(msg.Roles) != 0 {
		t.Errorf("expected no roles, got %v", msg.Roles)
	}
}

func TestToMessage_RequiresAuthor(t *testing.T) {
	m := gatewayMessage("hello")
	m.Author = nil

	if _, err := toMessage(m, nil); err == nil {
		t.Error("expected error for message without author, got nil")
	}
}

func TestToReaction(t *testing.T) {
	r := &discordgo.MessageReactionAdd{MessageReaction: &discordgo.MessageReaction{
		UserID:    "500",
		MessageID: "600",
		ChannelID: "300",
		Emoji:     discordgo.Emoji{Name: "✅"},
	}}

	reaction, err := toReaction(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reaction.Emoji != "✅" {
		t.Errorf("expected emoji ✅, got %q", reaction.Emoji)
	}
	if reaction.MessageID != snowflake.ID(600) || reaction.UserID != snowflake.ID(500) {
		t.Errorf("unexpected reaction %+v", reaction)
	}
}
