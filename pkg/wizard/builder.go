// Package wizard walks a field schema with the operator and assembles the
// resulting configuration document.
package wizard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/jfmusicbot/botsetup/pkg/logging"
	"github.com/jfmusicbot/botsetup/pkg/prompt"
	"github.com/jfmusicbot/botsetup/pkg/schema"
	"github.com/jfmusicbot/botsetup/pkg/validate"
)

// FullSetupQuestion decides whether optional fields are asked.
const FullSetupQuestion = "Do you want to run the full setup?"

// Asker is the interaction surface the builder drives.
type Asker interface {
	AskWithDefault(ctx context.Context, prompt, def string, validator validate.Func) (string, error)
	Confirm(ctx context.Context, question string, def prompt.Answer) (bool, error)
	Println(a ...any)
}

// Builder asks every field of a schema and collects the answers.
type Builder struct {
	schema schema.Registry
	asker  Asker
	logger *log.Logger
}

// New returns a Builder for reg that talks to the operator through asker.
func New(reg schema.Registry, asker Asker, logger *log.Logger) *Builder {
	return &Builder{
		schema: reg,
		asker:  asker,
		logger: logging.OrNop(logger),
	}
}

// Build runs the wizard. In minimal setup only required fields are asked;
// the answer of one field never influences another.
func (b *Builder) Build(ctx context.Context) (*schema.Configuration, error) {
	b.asker.Println("Welcome to the Config Build Assistant.")
	b.asker.Println()

	full, err := b.asker.Confirm(ctx, FullSetupQuestion, prompt.DefaultYes)
	if err != nil {
		return nil, fmt.Errorf("choose setup mode: %w", err)
	}
	b.logger.Debug("setup mode chosen", "full", full)

	cfg := schema.NewConfiguration()
	for _, field := range b.schema.Fields() {
		if !full && !field.Required {
			b.logger.Debug("field skipped", "key", field.Key)
			b.asker.Println(fmt.Sprintf("Skipping %s, because it is not mandatory", field.Key))
			continue
		}
		answer, err := b.asker.AskWithDefault(ctx, field.Description, field.DefaultText(), field.Check)
		if err != nil {
			return nil, fmt.Errorf("ask %s: %w", field.Key, err)
		}
		cfg.Set(field.Key, field.Resolve(answer))
	}

	rendered, err := cfg.YAML()
	if err != nil {
		return nil, fmt.Errorf("render configuration: %w", err)
	}
	b.asker.Println("Success!")
	b.asker.Println()
	b.asker.Println(string(rendered))
	return cfg, nil
}
