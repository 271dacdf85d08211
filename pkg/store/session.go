package store

import "time"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single role/content entry of a conversation
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session represents the active shopper session state
type Session struct {
	ID            string `json:"id"`
	Authenticated bool   `json:"authenticated"`

	// Messages[0] is the system turn once the session has been seeded
	Messages []Turn `json:"messages"`

	// Category -> most recently matched literal (usage, budget, brand, size, technology)
	Preferences map[string]string `json:"preferences"`

	QuestionIndex int      `json:"question_index"`
	Answers       []string `json:"answers"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates an empty session with the given id
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:          id,
		Preferences: map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Reset discards the conversation and seeds it with exactly one system turn.
// The authentication flag survives a reset.
func (s *Session) Reset(systemPrompt string) {
	s.Messages = []Turn{{Role: RoleSystem, Content: systemPrompt}}
	s.Preferences = map[string]string{}
	s.QuestionIndex = 0
	s.Answers = nil
	s.UpdatedAt = time.Now()
}

// EnsureSystem prepends the system turn when the history does not start with one
func (s *Session) EnsureSystem(systemPrompt string) {
	if len(s.Messages) > 0 && s.Messages[0].Role == RoleSystem {
		return
	}
	s.Messages = append([]Turn{{Role: RoleSystem, Content: systemPrompt}}, s.Messages...)
}

func (s *Session) Append(role, content string) {
	s.Messages = append(s.Messages, Turn{Role: role, Content: content})
	s.UpdatedAt = time.Now()
}

// Clone returns a deep copy so stored sessions are never shared between requests
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Messages = append([]Turn(nil), s.Messages...)
	c.Answers = append([]string(nil), s.Answers...)
	c.Preferences = make(map[string]string, len(s.Preferences))
	for k, v := range s.Preferences {
		c.Preferences[k] = v
	}
	return &c
}

// UserTurns returns the content of every user turn in order
func UserTurns(turns []Turn) []string {
	out := make([]string, 0, len(turns))
	for _, t := range turns {
		if t.Role == RoleUser {
			out = append(out, t.Content)
		}
	}
	return out
}
