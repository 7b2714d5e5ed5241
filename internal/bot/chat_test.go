package bot

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// stubSession is a test double for Session.
type stubSession struct {
	sent        []string
	lastEdit    *discordgo.MessageEdit
	reactions   []string
	removedBy   string
	deleted     string
	permsUserID string
	sendErr     error
}

func (s *stubSession) ChannelMessageSend(
	channelID, content string,
	_ ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	s.sent = append(s.sent, content)
	return &discordgo.Message{ID: "900000000000000001", ChannelID: channelID}, nil
}

func (s *stubSession) ChannelMessageSendEmbed(
	channelID string,
	embed *discordgo.MessageEmbed,
	_ ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	s.sent = append(s.sent, embed.Title)
	return &discordgo.Message{ID: "900000000000000002", ChannelID: channelID}, nil
}

func (s *stubSession) ChannelMessageEditComplex(
	data *discordgo.MessageEdit,
	_ ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	s.lastEdit = data
	return &discordgo.Message{ID: data.ID, ChannelID: data.Channel}, nil
}

func (s *stubSession) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	s.deleted = messageID
	return nil
}

func (s *stubSession) MessageReactionAdd(channelID, messageID, emojiID string, _ ...discordgo.RequestOption) error {
	s.reactions = append(s.reactions, emojiID)
	return nil
}

func (s *stubSession) MessageReactionRemove(
	channelID, messageID, emojiID, userID string,
	_ ...discordgo.RequestOption,
) error {
	s.removedBy = userID
	return nil
}

func (s *stubSession) UserChannelPermissions(
	userID, channelID string,
	_ ...discordgo.RequestOption,
) (int64, error) {
	s.permsUserID = userID
	return discordgo.PermissionManageMessages, nil
}

func TestDiscordChat_SendMessageParsesID(t *testing.T) {
	session := &stubSession{}
	chat := NewDiscordChat(session, func() string { return "1" })

	id, err := chat.SendMessage(snowflake.ID(10), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id != snowflake.ID(900000000000000001) {
		t.Errorf("expected id 900000000000000001, got %s", id)
	}
	if len(session.sent) != 1 || session.sent[0] != "hello" {
		t.Errorf("expected hello to be sent, got %v", session.sent)
	}
}

func TestDiscordChat_SendMessageReturnsError(t *testing.T) {
	expectedErr := errors.New("missing access")
	chat := NewDiscordChat(&stubSession{sendErr: expectedErr}, func() string { return "1" })

	if _, err := chat.SendMessage(snowflake.ID(10), "hello"); !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestDiscordChat_EditMessageClearsEmbed(t *testing.T) {
	session := &stubSession{}
	chat := NewDiscordChat(session, func() string { return "1" })

	if err := chat.EditMessage(snowflake.ID(10), snowflake.ID(20), "Cancelled.", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.lastEdit == nil {
		t.Fatal("expected an edit, got none")
	}
	if session.lastEdit.ID != "20" || session.lastEdit.Channel != "10" {
		t.Errorf("unexpected edit target %s/%s", session.lastEdit.Channel, session.lastEdit.ID)
	}
	if *session.lastEdit.Content != "Cancelled." {
		t.Errorf("expected content Cancelled., got %q", *session.lastEdit.Content)
	}
	if session.lastEdit.Embeds == nil || len(*session.lastEdit.Embeds) != 0 {
		t.Error("expected embeds to be cleared")
	}
}

func TestDiscordChat_ChannelPermissionsUsesSelf(t *testing.T) {
	session := &stubSession{}
	chat := NewDiscordChat(session, func() string { return "42" })

	perms, err := chat.ChannelPermissions(snowflake.ID(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.permsUserID != "42" {
		t.Errorf("expected permissions of user 42, got %q", session.permsUserID)
	}
	if perms&discordgo.PermissionManageMessages == 0 {
		t.Error("expected manage messages permission")
	}
}

func TestDiscordChat_RemoveReaction(t *testing.T) {
	session := &stubSession{}
	chat := NewDiscordChat(session, func() string { return "42" })

	if err := chat.RemoveReaction(snowflake.ID(10), snowflake.ID(20), "▶️", snowflake.ID(7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.removedBy != "7" {
		t.Errorf("expected reaction of user 7 to be removed, got %q", session.removedBy)
	}
}
