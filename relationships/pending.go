package relationships

import (
	"github.com/mmdatafocus/intake_backend/messages"
)

// ReducePending tracks the legacy ids of people being attached.
func ReducePending(pending []string, msg messages.Message) []string {
	switch m := msg.(type) {
	case messages.AttachStarted:
		for _, id := range pending {
			if id == m.LegacyID {
				return pending
			}
		}
		return append(append([]string{}, pending...), m.LegacyID)
	case messages.AttachCompleted:
		out := make([]string, 0, len(pending))
		for _, id := range pending {
			if id != m.LegacyID {
				out = append(out, id)
			}
		}
		return out
	case messages.Clear:
		return []string{}
	}
	return pending
}
