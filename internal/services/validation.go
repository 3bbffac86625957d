package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	nicknameRegexp = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)
	hexColorRegexp = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

// ValidateNoteInput checks a note request body against the strict input rules:
// nickname 2-30 characters of letters, numbers and spaces; note text 1-1000
// characters; color a hex color string. Returns one message per failed field,
// or nil when the input is valid.
func ValidateNoteInput(nickName, note, noteColor string) []string {
	var messages []string

	nickName = strings.TrimSpace(nickName)
	note = strings.TrimSpace(note)

	// Length limits count characters, not bytes.
	switch {
	case nickName == "":
		messages = append(messages, "Nickname is required")
	case utf8.RuneCountInString(nickName) < 2 || utf8.RuneCountInString(nickName) > 30:
		messages = append(messages, "Nickname must be between 2 and 30 characters")
	case !nicknameRegexp.MatchString(nickName):
		messages = append(messages, "Nickname can only contain letters, numbers, and spaces")
	}

	switch {
	case note == "":
		messages = append(messages, "Note content is required")
	case utf8.RuneCountInString(note) > 1000:
		messages = append(messages, "Note must be between 1 and 1000 characters")
	}

	if !hexColorRegexp.MatchString(noteColor) {
		messages = append(messages, "Invalid color format")
	}

	return messages
}
