package models

import (
	"strings"
	"testing"
)

func TestValidMessageContent(t *testing.T) {
	if !ValidMessageContent("hello") {
		t.Error("plain content should be valid")
	}
	if ValidMessageContent("") || ValidMessageContent("   \n\t ") {
		t.Error("empty or whitespace-only content should be invalid")
	}
	if !ValidMessageContent(strings.Repeat("a", MaxMessageLength)) {
		t.Error("content at the limit should be valid")
	}
	if ValidMessageContent(strings.Repeat("a", MaxMessageLength+1)) {
		t.Error("content over the limit should be invalid")
	}
	// the limit counts runes, not bytes
	if !ValidMessageContent(strings.Repeat("é", MaxMessageLength)) {
		t.Error("multibyte content at the rune limit should be valid")
	}
}
