package domain

import "strings"

// PongTrigger is the emoji that makes the bot answer without a prefix.
const PongTrigger = "🏓"

// PongReply is the answer to a message containing PongTrigger.
const PongReply = "Pong 🏓"

// IsPongTrigger reports whether content should be answered with PongReply.
func IsPongTrigger(content string) bool {
	return strings.Contains(content, PongTrigger)
}
