package common

import (
	"strings"

	"trpc.group/trpc-go/trpc-a2a-go/protocol"
)

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}

// TextOf returns the text of a part, which may arrive as a value or a pointer
func TextOf(part protocol.Part) (string, bool) {
	switch p := part.(type) {
	case protocol.TextPart:
		return p.Text, true
	case *protocol.TextPart:
		if p != nil {
			return p.Text, true
		}
	}
	return "", false
}

// JoinText concatenates the text parts of a message
func JoinText(message protocol.Message) string {
	var texts []string
	for _, part := range message.Parts {
		if text, ok := TextOf(part); ok && strings.TrimSpace(text) != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n")
}
