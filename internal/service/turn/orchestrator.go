package turn

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/arvinlabs/arvin-backend/internal/analysis/crisis"
	"github.com/arvinlabs/arvin-backend/internal/analysis/sentiment"
	"github.com/arvinlabs/arvin-backend/internal/model/chat"
	"github.com/arvinlabs/arvin-backend/internal/model/resources"
	"github.com/arvinlabs/arvin-backend/internal/service/session"
)

var (
	// ErrEmptyMessage rejects turns whose message is empty after trimming.
	ErrEmptyMessage = errors.New("message is required")
	// ErrGenerationUnavailable is returned when no generation backend was
	// configured at startup.
	ErrGenerationUnavailable = errors.New("generation service unavailable")
	// ErrGenerationFailed wraps failures of the external generation call.
	ErrGenerationFailed = errors.New("generation failed")
)

// DefaultUserID is used when a request does not name a user.
const DefaultUserID = "default"

const crisisMessage = `🚨 **URGENT**: I'm worried about you. Please reach out for immediate help:

• Nigeria: Call 09010000000 (Mentally Aware Nigeria Initiative)
• Global: Text 988 (Suicide & Crisis Lifeline)
• Emergency: 112 (Nigeria)

You matter, and professionals can help you through this. Please don't face this alone.`

// Generator is the external text-generation capability. It receives the
// bounded context window and returns a single reply.
type Generator interface {
	Generate(ctx context.Context, window []chat.Message) (string, error)
}

// Sentiment carries the score and derived mood of a non-crisis turn.
type Sentiment struct {
	Score float64        `json:"score"`
	Mood  sentiment.Mood `json:"mood"`
}

// Result is the outcome of one conversation turn. It is produced once and
// never mutated after return.
type Result struct {
	IsCrisis  bool
	Message   string
	Sentiment *Sentiment
	Hotlines  []resources.Hotline
	Timestamp time.Time
}

// Orchestrator runs the turn pipeline: crisis check, sentiment scoring,
// history update, generation call, reply recording.
type Orchestrator struct {
	store      session.Store
	classifier *sentiment.Classifier
	generator  Generator
	genTimeout time.Duration
}

// NewOrchestrator wires the turn pipeline. generator may be nil when no
// credentials were configured; turns then fail with
// ErrGenerationUnavailable after the crisis check.
func NewOrchestrator(store session.Store, classifier *sentiment.Classifier, generator Generator, genTimeout time.Duration) *Orchestrator {
	if genTimeout <= 0 {
		genTimeout = 30 * time.Second
	}
	return &Orchestrator{
		store:      store,
		classifier: classifier,
		generator:  generator,
		genTimeout: genTimeout,
	}
}

// HandleTurn processes one user message.
//
// Crisis detection runs first and short-circuits everything else: a crisis
// turn never touches session history and never calls the generator. For
// normal turns the mood-annotated user message is appended before the
// generation call; a failed or cancelled call leaves that message recorded
// and unanswered, so a retried turn must not re-append it.
func (o *Orchestrator) HandleTurn(ctx context.Context, userID, message string) (Result, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Result{}, ErrEmptyMessage
	}
	if userID == "" {
		userID = DefaultUserID
	}

	if crisis.Detect(message) {
		log.Printf("[turn] crisis escalation for user=%s", userID)
		return Result{
			IsCrisis:  true,
			Message:   crisisMessage,
			Hotlines:  resources.CrisisHotlines(),
			Timestamp: time.Now().UTC(),
		}, nil
	}

	score, mood := o.classifier.Classify(message)
	annotated := fmt.Sprintf("[User mood detected as %s] %s", mood, message)

	if _, err := o.store.Append(ctx, userID, chat.RoleUser, annotated); err != nil {
		return Result{}, fmt.Errorf("append user message: %w", err)
	}

	if o.generator == nil {
		return Result{}, ErrGenerationUnavailable
	}

	window, err := o.store.Recent(ctx, userID, session.ContextWindow)
	if err != nil {
		return Result{}, fmt.Errorf("load context window: %w", err)
	}

	genCtx, cancel := context.WithTimeout(ctx, o.genTimeout)
	defer cancel()

	reply, err := o.generator.Generate(genCtx, window)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if _, err := o.store.Append(ctx, userID, chat.RoleAssistant, reply); err != nil {
		return Result{}, fmt.Errorf("append assistant reply: %w", err)
	}

	return Result{
		IsCrisis:  false,
		Message:   reply,
		Sentiment: &Sentiment{Score: score, Mood: mood},
		Timestamp: time.Now().UTC(),
	}, nil
}
