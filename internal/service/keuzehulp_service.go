package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tv-keuzehulp-be/internal/apperror"
	"tv-keuzehulp-be/internal/constant"
	"tv-keuzehulp-be/internal/dto"
	"tv-keuzehulp-be/internal/pkg/logger"
	"tv-keuzehulp-be/internal/pkg/metrics"
	"tv-keuzehulp-be/internal/repository/contract"
	"tv-keuzehulp-be/pkg/catalog"
	"tv-keuzehulp-be/pkg/events"
	"tv-keuzehulp-be/pkg/llm"
	"tv-keuzehulp-be/pkg/preference"
	"tv-keuzehulp-be/pkg/questionnaire"
	"tv-keuzehulp-be/pkg/recommend"
	"tv-keuzehulp-be/pkg/store"
)

// ErrEmptyMessage marks a chat request without any user text
var ErrEmptyMessage = errors.New("empty chat message")

type IKeuzehulpService interface {
	ResetSession(ctx context.Context, sess *store.Session) error
	Chat(ctx context.Context, sess *store.Session, request *dto.ChatRequest) (*dto.ChatResponse, error)
	Ask(ctx context.Context, sess *store.Session, request *dto.AskRequest) (*dto.AskResponse, error)
	Products(ctx context.Context) []catalog.Product
	ProductCount() int
}

// RelayConfig holds the completion settings read from configuration
type RelayConfig struct {
	Model        string
	MaxTokens    int
	Temperature  float64
	HistoryLimit int
	SystemPrompt string
}

type keuzehulpService struct {
	sessionRepo contract.SessionRepository
	llmProvider llm.LLMProvider
	catalog     *catalog.Catalog
	sequencer   *questionnaire.Sequencer
	extractor   *preference.Extractor
	recommender *recommend.Recommender
	events      IEventService
	metrics     *metrics.Metrics
	logger      logger.ILogger
	relay       RelayConfig
}

func NewKeuzehulpService(
	sessionRepo contract.SessionRepository,
	llmProvider llm.LLMProvider,
	products *catalog.Catalog,
	sequencer *questionnaire.Sequencer,
	events IEventService,
	m *metrics.Metrics,
	log logger.ILogger,
	relay RelayConfig,
) IKeuzehulpService {
	if products == nil {
		products = catalog.New(nil)
	}
	if relay.SystemPrompt == "" {
		relay.SystemPrompt = constant.KeuzehulpSystemPromptV1
	}
	return &keuzehulpService{
		sessionRepo: sessionRepo,
		llmProvider: llmProvider,
		catalog:     products,
		sequencer:   sequencer,
		extractor:   preference.NewExtractor(),
		recommender: recommend.NewRecommender(recommend.DefaultLimit),
		events:      events,
		metrics:     m,
		logger:      log,
		relay:       relay,
	}
}

func (s *keuzehulpService) ResetSession(ctx context.Context, sess *store.Session) error {
	sess.Reset(s.relay.SystemPrompt)
	if err := s.sessionRepo.Save(ctx, sess); err != nil {
		return apperror.Internal(constant.MsgInternalError, err)
	}

	s.metrics.SessionsResetTotal.Inc()
	s.emit(ctx, events.TypeSessionReset, map[string]interface{}{"session_id": sess.ID})
	return nil
}

func (s *keuzehulpService) Chat(ctx context.Context, sess *store.Session, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	stateless := len(request.Messages) > 0

	var turns []store.Turn
	if stateless {
		turns = s.clientTranscript(request)
	} else {
		sess.EnsureSystem(s.relay.SystemPrompt)
		if msg := strings.TrimSpace(request.Message); msg != "" {
			sess.Append(store.RoleUser, msg)
		}
		turns = sess.Messages
	}

	userText := lastUserText(turns)
	if userText == "" || (!stateless && strings.TrimSpace(request.Message) == "") {
		s.metrics.ObserveChat(metrics.OutcomeEmpty)
		return nil, apperror.Validation(constant.MsgNoQuestion, ErrEmptyMessage)
	}

	prefs := s.extractor.Extract(turns)
	if !stateless {
		sess.Preferences = prefs.Map()
	}

	var reply string
	if s.catalog.Len() > 0 && isRecommendationRequest(userText) {
		result := s.recommender.Recommend(prefs, s.catalog)
		reply = recommend.Render(result)

		s.metrics.ObserveChat(metrics.OutcomeRecommendation)
		s.metrics.ObserveRecommendation(result.Level(), result.Fallback)
		s.emit(ctx, events.TypeChatRecommended, map[string]interface{}{
			"session_id":  sessionID(sess),
			"products":    len(result.Products),
			"relaxations": result.Level(),
			"fallback":    result.Fallback,
		})
	} else {
		var err error
		reply, err = s.complete(ctx, s.relayHistory(turns, prefs))
		if err != nil {
			s.metrics.ObserveChat(metrics.OutcomeUpstreamError)
			s.emit(ctx, events.TypeUpstreamFailed, map[string]interface{}{"session_id": sessionID(sess)})
			if !stateless {
				s.save(ctx, sess)
			}
			return nil, apperror.Upstream(constant.MsgUpstreamFailure, err)
		}

		s.metrics.ObserveChat(metrics.OutcomeRelay)
		s.emit(ctx, events.TypeChatRelayed, map[string]interface{}{
			"session_id": sessionID(sess),
			"turns":      len(turns),
		})
	}

	if !stateless {
		sess.Append(store.RoleAssistant, reply)
		s.save(ctx, sess)
	}

	return &dto.ChatResponse{Assistant: reply}, nil
}

func (s *keuzehulpService) Ask(ctx context.Context, sess *store.Session, request *dto.AskRequest) (*dto.AskResponse, error) {
	step, err := s.sequencer.Next(request.QuestionIndex)
	if err != nil {
		return nil, apperror.Validation(constant.MsgInvalidIndex, err)
	}

	if sess != nil {
		answered := 0
		for _, a := range request.Answers {
			answered = s.sequencer.Advance(answered, a)
		}
		sess.QuestionIndex = answered
		sess.Answers = append([]string(nil), request.Answers...)
		s.save(ctx, sess)
	}

	if !step.Done {
		return &dto.AskResponse{
			NextQuestion:     step.Question,
			NewQuestionIndex: step.Index,
			Done:             false,
		}, nil
	}

	history := []llm.Message{{Role: constant.ChatMessageRoleSystem, Content: constant.AskSystemPromptV1}}
	prefs := s.extractor.ExtractTexts(request.Answers)
	if note := s.candidatesNote(prefs); note != "" {
		history = append(history, llm.Message{Role: constant.ChatMessageRoleSystem, Content: note})
	}
	history = append(history, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: fmt.Sprintf(constant.AskSummaryPromptV1, s.summariseAnswers(request.Answers)),
	})

	reply, err := s.complete(ctx, history)
	if err != nil {
		s.metrics.ObserveChat(metrics.OutcomeUpstreamError)
		return nil, apperror.Upstream(constant.MsgUpstreamFailure, err)
	}

	s.emit(ctx, events.TypeQuestionnaireEnd, map[string]interface{}{"answers": len(request.Answers)})
	return &dto.AskResponse{
		NextQuestion:     reply,
		NewQuestionIndex: step.Index,
		Done:             true,
	}, nil
}

func (s *keuzehulpService) Products(_ context.Context) []catalog.Product {
	return s.catalog.All()
}

func (s *keuzehulpService) ProductCount() int {
	return s.catalog.Len()
}

// clientTranscript rebuilds a conversation from client-held turns. Client
// system turns are dropped and the server system turn is enforced.
func (s *keuzehulpService) clientTranscript(request *dto.ChatRequest) []store.Turn {
	turns := []store.Turn{{Role: store.RoleSystem, Content: s.relay.SystemPrompt}}
	for _, m := range request.Messages {
		content := strings.TrimSpace(m.Content)
		if m.Role == store.RoleSystem || content == "" {
			continue
		}
		turns = append(turns, store.Turn{Role: m.Role, Content: content})
	}
	if msg := strings.TrimSpace(request.Message); msg != "" {
		turns = append(turns, store.Turn{Role: store.RoleUser, Content: msg})
	}
	return turns
}

// relayHistory caps the transcript to the system turn plus the last
// HistoryLimit turns and adds a transient catalog note after the system turn
func (s *keuzehulpService) relayHistory(turns []store.Turn, prefs preference.Preferences) []llm.Message {
	var system []llm.Message
	var rest []llm.Message
	for _, t := range turns {
		m := llm.Message{Role: t.Role, Content: t.Content}
		if t.Role == store.RoleSystem {
			system = append(system, m)
			continue
		}
		rest = append(rest, m)
	}

	if limit := s.relay.HistoryLimit; limit > 0 && len(rest) > limit {
		rest = rest[len(rest)-limit:]
	}

	if note := s.candidatesNote(prefs); note != "" {
		system = append(system, llm.Message{Role: store.RoleSystem, Content: note})
	}
	return append(system, rest...)
}

func (s *keuzehulpService) candidatesNote(prefs preference.Preferences) string {
	if prefs.Empty() || s.catalog.Len() == 0 {
		return ""
	}

	result := s.recommender.Recommend(prefs, s.catalog)
	lines := make([]string, 0, len(result.Products))
	for _, p := range result.Products {
		lines = append(lines, recommend.Bullet(p))
	}
	return fmt.Sprintf(constant.CatalogCandidatesNoteV1, strings.Join(lines, "\n"))
}

func (s *keuzehulpService) complete(ctx context.Context, history []llm.Message) (string, error) {
	opts := []llm.Option{llm.WithTemperature(s.relay.Temperature)}
	if s.relay.Model != "" {
		opts = append(opts, llm.WithModel(s.relay.Model))
	}
	if s.relay.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(s.relay.MaxTokens))
	}

	start := time.Now()
	reply, err := s.llmProvider.Chat(ctx, history, opts...)
	s.metrics.RelayDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Error(constant.ModuleKeuzehulp, "completion relay failed", map[string]interface{}{
			"turns": len(history),
			"error": err.Error(),
		})
		return "", err
	}
	return reply, nil
}

func (s *keuzehulpService) summariseAnswers(answers []string) string {
	questions := s.sequencer.Questions()
	var b strings.Builder
	for i, a := range answers {
		a = strings.TrimSpace(a)
		if a == "" {
			a = "Geen antwoord"
		}
		if i < len(questions) {
			fmt.Fprintf(&b, "%d) %s\n   %s\n", i+1, questions[i], a)
		} else {
			fmt.Fprintf(&b, "%d) %s\n", i+1, a)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *keuzehulpService) save(ctx context.Context, sess *store.Session) {
	if err := s.sessionRepo.Save(ctx, sess); err != nil {
		s.logger.Error(constant.ModuleSession, "failed to save session", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
	}
}

func (s *keuzehulpService) emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events != nil {
		s.events.Emit(ctx, eventType, data)
	}
}

func sessionID(sess *store.Session) string {
	if sess == nil {
		return ""
	}
	return sess.ID
}

func lastUserText(turns []store.Turn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == store.RoleUser {
			return strings.TrimSpace(turns[i].Content)
		}
	}
	return ""
}

// recommendationTrigger matches whole trigger words only, so "voorraad" and
// "raadplegen" do not count as asking for advice
var recommendationTrigger = func() *regexp.Regexp {
	quoted := make([]string, len(constant.RecommendationTriggers))
	for i, t := range constant.RecommendationTriggers {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}()

func isRecommendationRequest(text string) bool {
	return recommendationTrigger.MatchString(strings.ToLower(text))
}
