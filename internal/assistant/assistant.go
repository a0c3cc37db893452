// Package assistant orchestrates one finance-chat session: it classifies
// each incoming message, composes the reply, and keeps the append-only
// conversation history persisted.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/1adityakadam/financial-calculators/internal/backend"
	"github.com/1adityakadam/financial-calculators/internal/cache"
	"github.com/1adityakadam/financial-calculators/internal/classify"
	"github.com/1adityakadam/financial-calculators/internal/config"
	"github.com/1adityakadam/financial-calculators/internal/respond"
	"github.com/1adityakadam/financial-calculators/internal/rules"
	"github.com/1adityakadam/financial-calculators/internal/session"
	"github.com/1adityakadam/financial-calculators/internal/store"
	"github.com/1adityakadam/financial-calculators/internal/telemetry"
)

// generateTimeout bounds the wait on the hosted model per turn.
const generateTimeout = 30 * time.Second

// Assistant is the session-scoped chat orchestrator.
type Assistant struct {
	cfg      config.Config
	store    store.Store
	rules    *rules.RuleSet
	deps     backend.Deps
	router   *classify.Router
	composer *respond.Composer
	cache    *cache.Cache
	logger   *slog.Logger
	tracer   trace.Tracer
	meter    metric.Meter
	cleanup  func()

	mu      sync.Mutex
	session *session.Session
}

// New wires up an assistant from configuration: logger, telemetry, rule
// set, sqlite store, LLM backend, classifier, and composer.
func New(cfg config.Config) (*Assistant, error) {
	logger, err := telemetry.InitLogger(cfg.LogDir, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	tracer, meter, cleanup, err := telemetry.Init(context.Background(), cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("initialize telemetry: %w", err)
	}

	rs := rules.Default()
	if cfg.RulesFile != "" {
		rs, err = rules.Load(cfg.RulesFile)
		if err != nil {
			cleanup()
			return nil, err
		}
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("open store: %w", err)
	}

	deps := backend.Deps{
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		Tracer:     tracer,
		Meter:      meter,
		Logger:     logger,
	}
	gen, err := newGenerator(cfg, deps)
	if err != nil {
		cleanup()
		st.Close()
		return nil, err
	}

	a := &Assistant{
		cfg:      cfg,
		store:    st,
		rules:    rs,
		deps:     deps,
		router:   classify.NewRouter(rs),
		composer: respond.NewComposer(rs, gen, logger),
		cache:    cache.New(0),
		logger:   logger,
		tracer:   tracer,
		meter:    meter,
		cleanup:  cleanup,
	}

	if cfg.SessionID != "" {
		sess, err := st.LoadSession(context.Background(), cfg.SessionID)
		if err != nil {
			logger.Warn("failed to load session, creating new one", "error", err)
			a.session = store.NewSession(cfg.UserID, cfg.Backend)
		} else {
			a.session = sess
			logger.Info("loaded existing session", "session_id", sess.ID)
		}
	} else {
		a.session = store.NewSession(cfg.UserID, cfg.Backend)
	}

	return a, nil
}

func newGenerator(cfg config.Config, deps backend.Deps) (backend.Generator, error) {
	switch cfg.Backend {
	case config.BackendOpenAI:
		return backend.NewOpenAI(deps, cfg.Model, ""), nil
	case config.BackendGemini:
		return backend.NewGemini(deps, cfg.Model, ""), nil
	case config.BackendOllama:
		return backend.NewOllama(deps, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}

// Session returns the current session id.
func (a *Assistant) Session() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.ID
}

// Turn is the outcome of one handled message.
type Turn struct {
	Reply    string
	Category classify.Category
}

// HandleMessage runs one full turn: append the user message, classify,
// compose, append the reply, and persist asynchronously. The user's
// message is stored before any generation happens, so a hosted-model
// failure never loses it.
func (a *Assistant) HandleMessage(ctx context.Context, text string) (Turn, error) {
	ctx, span := a.tracer.Start(ctx, "handle_message")
	defer span.End()

	a.mu.Lock()
	a.session.Append(session.RoleUser, text)
	history := make([]session.Message, len(a.session.Messages))
	copy(history, a.session.Messages)
	a.mu.Unlock()

	result := a.router.Classify(text)
	a.logger.Info("classified message",
		"category", result.Category,
		"calculator", result.Calculator,
		"topic", result.Topic,
		"groups", result.Groups,
	)
	a.countCategory(ctx, result.Category)

	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	reply := a.composeCached(genCtx, result, history)

	a.mu.Lock()
	a.session.Append(session.RoleAssistant, reply.Text)
	a.mu.Unlock()

	go a.persist()

	return Turn{Reply: reply.Text, Category: result.Category}, nil
}

// composeCached consults the response cache for generative categories so
// a repeated question with identical history skips the model call.
func (a *Assistant) composeCached(ctx context.Context, result classify.Result, history []session.Message) respond.Reply {
	key := cache.Key(string(result.Category)+result.Calculator+result.Topic, history)
	if cached, ok := a.cache.Get(key); ok {
		a.logger.Info("cache hit", "key", key[:16])
		return respond.Reply{Text: cached, Generated: true}
	}

	reply := a.composer.Compose(ctx, result, history)
	if reply.Generated {
		a.cache.Put(key, reply.Text)
	}
	return reply
}

func (a *Assistant) countCategory(ctx context.Context, category classify.Category) {
	counter, err := a.meter.Int64Counter(
		"chat.classified",
		metric.WithDescription("Messages classified, by category"),
	)
	if err == nil {
		counter.Add(ctx, 1, metric.WithAttributes(categoryAttr(category)))
	}
}

func (a *Assistant) persist() {
	a.mu.Lock()
	snapshot := *a.session
	snapshot.Messages = make([]session.Message, len(a.session.Messages))
	copy(snapshot.Messages, a.session.Messages)
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.store.SaveSession(ctx, &snapshot); err != nil {
		a.logger.Error("failed to save session", "error", err)
		return
	}
	a.logger.Info("session saved", "session_id", snapshot.ID, "message_count", len(snapshot.Messages))
}

// History returns the stored history for a user.
func (a *Assistant) History(ctx context.Context, userID string) ([]session.Message, error) {
	return a.store.History(ctx, userID)
}

// ClearHistory removes a user's stored messages and empties the live
// session when it belongs to that user.
func (a *Assistant) ClearHistory(ctx context.Context, userID string) error {
	if err := a.store.ClearHistory(ctx, userID); err != nil {
		return err
	}
	a.mu.Lock()
	if a.session.UserID == userID {
		a.session.Messages = nil
	}
	a.mu.Unlock()
	return nil
}

// NewSession saves the current session and starts a fresh one.
func (a *Assistant) NewSession() string {
	a.persist()
	a.mu.Lock()
	a.session = store.NewSession(a.cfg.UserID, a.cfg.Backend)
	id := a.session.ID
	a.mu.Unlock()
	a.logger.Info("created new session", "session_id", id)
	return id
}

// Close persists the session and releases resources.
func (a *Assistant) Close() error {
	a.persist()
	a.cleanup()
	return a.store.Close()
}
