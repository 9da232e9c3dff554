package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/ai"
	"github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/ai/prompt"
)

// Fixed user-facing messages.
const (
	MsgNoFeedback   = "No valid feedback provided for analysis."
	MsgInvalidFocus = "Invalid analysis focus selected."
	MsgNoResponse   = "No response from the model."
)

// Options tunes a Service.
type Options struct {
	// Provider names the backend in the missing-credential message.
	Provider ai.Provider
	// Timeout bounds a single model call; zero leaves it to the client.
	Timeout time.Duration
	Logger  *zap.Logger
	// Observe, when set, is called once per Analyze with the outcome kind.
	Observe func(kind ai.Kind, elapsed time.Duration)
}

// Service turns a feedback corpus into model-written analysis text.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	client  ai.Generator
	opts    Options
	log     *zap.Logger
	nowFunc func() time.Time
}

// NewService wires a generator. A nil client means no credential was configured.
func NewService(client ai.Generator, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{client: client, opts: opts, log: log, nowFunc: time.Now}
}

// Configured reports whether a model backend is available.
func (s *Service) Configured() bool { return s.client != nil }

// Provider returns the configured backend description.
func (s *Service) Provider() ai.Provider { return s.opts.Provider }

// MissingCredentialMessage is shown instead of calling the model when no key is set.
func (s *Service) MissingCredentialMessage() string {
	name, env := s.opts.Provider.Name, s.opts.Provider.EnvVar
	if name == "" {
		name = "AI"
	}
	if env == "" {
		env = "an API key"
	}
	return fmt.Sprintf("%s API key not found. Please set %s in environment to enable AI analysis.", name, env)
}

// Analyze never fails: every path ends in an Outcome with displayable text.
func (s *Service) Analyze(ctx context.Context, corpus feedback.Corpus, focus ai.Focus) ai.Outcome {
	start := s.nowFunc()
	out := s.analyze(ctx, corpus, focus)
	elapsed := s.nowFunc().Sub(start)

	fields := []zap.Field{
		zap.String("focus", focus.String()),
		zap.String("kind", string(out.Kind)),
		zap.Int("rows", len(corpus)),
		zap.Duration("elapsed", elapsed),
	}
	if out.Err != nil {
		fields = append(fields, zap.Error(out.Err))
	}
	if out.Kind == ai.KindService || out.Kind == ai.KindTimeout {
		s.log.Warn("ai analysis failed", fields...)
	} else {
		s.log.Info("ai analysis", fields...)
	}
	if s.opts.Observe != nil {
		s.opts.Observe(out.Kind, elapsed)
	}
	return out
}

func (s *Service) analyze(ctx context.Context, corpus feedback.Corpus, focus ai.Focus) ai.Outcome {
	rows := corpus.Clean()
	if len(rows) == 0 {
		return ai.Outcome{Kind: ai.KindValidation, Text: MsgNoFeedback, Err: ai.ErrEmptyCorpus}
	}

	text, ok := prompt.Build(rows, focus)
	if !ok {
		return ai.Outcome{Kind: ai.KindValidation, Text: MsgInvalidFocus, Err: ai.ErrInvalidFocus}
	}

	if s.client == nil {
		return ai.Outcome{Kind: ai.KindConfig, Text: s.MissingCredentialMessage(), Err: ai.ErrMissingCredential}
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	resp, err := s.generate(ctx, text)
	if err != nil {
		serr := &ai.ServiceError{Provider: s.opts.Provider.Name, Err: err}
		if ai.IsTimeout(err) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ai.Outcome{Kind: ai.KindTimeout, Text: fmt.Sprintf("AI analysis timed out: %v", err), Err: serr}
		}
		return ai.Outcome{Kind: ai.KindService, Text: fmt.Sprintf("AI analysis error: %v", err), Err: serr}
	}
	if resp = strings.TrimSpace(resp); resp == "" {
		return ai.Outcome{Kind: ai.KindOK, Text: MsgNoResponse}
	}
	return ai.Outcome{Kind: ai.KindOK, Text: resp}
}

// generate shields callers from a panicking client library.
func (s *Service) generate(ctx context.Context, text string) (resp string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model client panic: %v", r)
		}
	}()
	return s.client.Generate(ctx, text)
}
