package mapper

import (
	"time"

	"tv-keuzehulp-be/internal/model"
	"tv-keuzehulp-be/pkg/store"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToModel(s *store.Session, expiresAt time.Time) *model.KeuzehulpSession {
	if s == nil {
		return nil
	}

	turns := make([]model.SessionTurn, len(s.Messages))
	for i, t := range s.Messages {
		turns[i] = model.SessionTurn{Role: t.Role, Content: t.Content}
	}

	prefs := make(map[string]string, len(s.Preferences))
	for k, v := range s.Preferences {
		prefs[k] = v
	}

	return &model.KeuzehulpSession{
		Id:            s.ID,
		Authenticated: s.Authenticated,
		Messages:      datatypes.JSONSlice[model.SessionTurn](turns),
		Preferences:   datatypes.NewJSONType(prefs),
		QuestionIndex: s.QuestionIndex,
		Answers:       datatypes.JSONSlice[string](append([]string{}, s.Answers...)),
		ExpiresAt:     expiresAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *SessionMapper) ToSession(r *model.KeuzehulpSession) *store.Session {
	if r == nil {
		return nil
	}

	var turns []store.Turn
	for _, t := range r.Messages {
		turns = append(turns, store.Turn{Role: t.Role, Content: t.Content})
	}

	prefs := map[string]string{}
	for k, v := range r.Preferences.Data() {
		prefs[k] = v
	}

	var answers []string
	if len(r.Answers) > 0 {
		answers = append(answers, r.Answers...)
	}

	return &store.Session{
		ID:            r.Id,
		Authenticated: r.Authenticated,
		Messages:      turns,
		Preferences:   prefs,
		QuestionIndex: r.QuestionIndex,
		Answers:       answers,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
