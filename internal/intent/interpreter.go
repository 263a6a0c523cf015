package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rshoplabs/shopbot/internal/catalog"
	"github.com/rshoplabs/shopbot/internal/completion"
)

// CouldNotUnderstand is the generic user-facing message for model output
// that survives sanitization but still fails to parse. Raw model text is
// logged, never shown.
const CouldNotUnderstand = "could not understand the request"

// CatalogContextProvider supplies the catalog projection for the prompt.
type CatalogContextProvider interface {
	QueryContext(ctx context.Context) (catalog.Context, error)
}

// Interpreter turns free-form operator text into a Command. It never
// returns an error: every failure mode collapses into an error command
// so callers have one uniform contract.
type Interpreter struct {
	client  completion.Client
	store   CatalogContextProvider
	timeout time.Duration
	logger  *slog.Logger
}

// NewInterpreter creates an Interpreter with a bounded completion wait.
func NewInterpreter(log *slog.Logger, client completion.Client, store CatalogContextProvider, timeout time.Duration) *Interpreter {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Interpreter{
		client:  client,
		store:   store,
		timeout: timeout,
		logger:  log.With(slog.String("service", "intent")),
	}
}

// Resolve interprets userText into a Command. Pending-media annotations
// are expected to already be appended to userText by the caller; the
// interpreter only sees text.
func (i *Interpreter) Resolve(ctx context.Context, userText string) Command {
	snapshot, err := i.store.QueryContext(ctx)
	if err != nil {
		i.logger.Error("catalog context failed", slog.Any("error", err))
		return ErrorCommand(fmt.Sprintf("something went wrong: %v", err))
	}
	systemPrompt := BuildSystemPrompt(snapshot)

	callCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	raw, err := i.client.Complete(callCtx, systemPrompt, userText)
	if err != nil {
		// Transport failures are surfaced with detail, unlike parse
		// failures which stay generic.
		i.logger.Error("completion call failed", slog.Any("error", err))
		return ErrorCommand(fmt.Sprintf("something went wrong: %v", err))
	}

	cmd, err := Parse(raw)
	if err != nil {
		i.logger.Warn("unparseable completion",
			slog.Any("error", err),
			slog.String("raw_prefix", prefix(raw, 300)))
		return ErrorCommand(CouldNotUnderstand)
	}
	i.logger.Info("command resolved", slog.String("action", string(cmd.Action)))
	return cmd
}

// Parse sanitizes raw model output and decodes it into a Command.
func Parse(raw string) (Command, error) {
	cleaned := Sanitize(raw)

	decoder := json.NewDecoder(strings.NewReader(cleaned))
	decoder.UseNumber()
	var wire wireCommand
	if err := decoder.Decode(&wire); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	cmd, err := wire.toCommand()
	if err != nil {
		return Command{}, err
	}
	if cmd.DisplayMessage == "" {
		cmd.DisplayMessage = CouldNotUnderstand
	}
	return cmd, nil
}

func prefix(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
