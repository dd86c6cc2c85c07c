// Package cli implements the mealfinder-search command line client.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	apperrors "github.com/pageza/mealfinder/backend/internal/errors"
	"github.com/pageza/mealfinder/backend/internal/logging"
	"github.com/pageza/mealfinder/backend/internal/mealdb"
	"github.com/pageza/mealfinder/backend/internal/service"
	"github.com/pageza/mealfinder/backend/internal/types"
	"github.com/pageza/mealfinder/backend/internal/view"
)

const name = "mealfinder-search"

type searchOutput struct {
	Status  string        `json:"status"`
	Message string        `json:"message,omitempty"`
	Term    string        `json:"term"`
	Recipes []view.Detail `json:"recipes"`
}

// NewCommand builds the command. Results are written to out.
func NewCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "Find recipes that use an ingredient",
		ArgsUsage: "<ingredient>",
		Description: `Searches TheMealDB for recipes containing the ingredient and prints them
as cards. Only the first comma-separated ingredient is used.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "Print the details of this recipe from the results",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print JSON instead of text",
			},
			&cli.StringFlag{
				Name:    "base-url",
				Value:   mealdb.DefaultBaseURL,
				Usage:   "Recipe API root",
				Sources: cli.EnvVars("MEALDB_BASE_URL"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Upstream request timeout (0 disables)",
				Sources: cli.EnvVars("UPSTREAM_TIMEOUT"),
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Usage:   "Maximum simultaneous detail lookups (0 is unbounded)",
				Sources: cli.EnvVars("DETAIL_CONCURRENCY"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			slog.SetDefault(logging.New(os.Stderr, cmd.String("log-level"), "text"))

			raw := strings.Join(cmd.Args().Slice(), " ")
			if err := service.ValidateQuery(raw); err != nil {
				return err
			}

			client := mealdb.NewClient(cmd.String("base-url"), &http.Client{Timeout: cmd.Duration("timeout")})
			pipeline := service.NewRecipePipeline(client, service.WithConcurrency(cmd.Int("concurrency")))

			outcome := pipeline.FetchRecipes(ctx, raw)
			return render(out, outcome, cmd.String("id"), cmd.Bool("json"))
		},
	}
}

func render(out io.Writer, outcome types.FetchOutcome, id string, asJSON bool) error {
	switch outcome.Kind {
	case types.OutcomeFailure:
		return fmt.Errorf("%s: %w", service.MsgFetchError, outcome.Err)
	case types.OutcomeEmpty:
		if asJSON {
			return writeJSON(out, searchOutput{Status: string(outcome.Kind), Message: service.MsgNoRecipes, Term: outcome.Term, Recipes: []view.Detail{}})
		}
		_, err := fmt.Fprintln(out, service.MsgNoRecipes)
		return err
	}

	if id != "" {
		set := types.ResultSet{Term: outcome.Term, Recipes: outcome.Recipes, UpdatedAt: time.Now()}
		recipe, ok := set.Find(id)
		if !ok {
			return apperrors.Newf(apperrors.ErrNotFound, http.StatusNotFound, "recipe %s is not in the results for %q", id, outcome.Term)
		}
		detail := view.NewDetail(*recipe)
		if asJSON {
			return writeJSON(out, detail)
		}
		return writeDetail(out, detail)
	}

	if asJSON {
		details := make([]view.Detail, 0, len(outcome.Recipes))
		for _, r := range outcome.Recipes {
			details = append(details, view.NewDetail(r))
		}
		return writeJSON(out, searchOutput{Status: string(outcome.Kind), Term: outcome.Term, Recipes: details})
	}
	return writeCards(out, outcome)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCards(out io.Writer, outcome types.FetchOutcome) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", view.Heading(outcome.Term, len(outcome.Recipes)))
	for _, card := range view.Cards(outcome.Recipes) {
		fmt.Fprintf(&b, "  %-8s %s (%s)\n", card.ID, card.Name, card.Category)
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func writeDetail(out io.Writer, d view.Detail) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", d.Name)
	fmt.Fprintf(&b, "Category: %s\n", d.Category)
	if d.Area != "" {
		fmt.Fprintf(&b, "Area: %s\n", d.Area)
	}
	b.WriteString("\nIngredients:\n")
	for _, line := range d.Ingredients {
		fmt.Fprintf(&b, "  - %s\n", line)
	}
	fmt.Fprintf(&b, "\nInstructions:\n%s\n", d.Instructions)
	if d.YouTube != "" {
		fmt.Fprintf(&b, "\nVideo: %s\n", d.YouTube)
	}
	_, err := io.WriteString(out, b.String())
	return err
}
