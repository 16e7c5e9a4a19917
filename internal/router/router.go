package router

import "strings"

// Route matches text against the command set: case-insensitive, surrounding
// whitespace ignored, whole message only. "/start@my_bot" matches "/start".
func (r *CommandRouter) Route(text string) Result {
	cmd, ok := r.commands[normalize(text)]
	if !ok {
		return Result{}
	}
	return Result{Matched: true, Command: cmd}
}

func normalize(text string) string {
	key := strings.ToLower(strings.TrimSpace(text))
	if strings.HasPrefix(key, "/") {
		if at := strings.IndexByte(key, '@'); at > 0 {
			key = key[:at]
		}
	}
	return key
}
