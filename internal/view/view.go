// Package view turns recipe records into the values rendered by the HTML
// templates, the JSON API and the CLI.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pageza/mealfinder/backend/internal/types"
)

const (
	notAvailable   = "N/A"
	noInstructions = "No instructions available."
)

var instructionsMarkdown = goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))

// Card is one entry of the results grid.
type Card struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Thumbnail string       `json:"thumbnail"`
	Category  string       `json:"category"`
	Style     template.CSS `json:"-"`
}

// Detail is the content of the recipe modal.
type Detail struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Image            string        `json:"image"`
	Category         string        `json:"category"`
	Area             string        `json:"area,omitempty"`
	Instructions     string        `json:"instructions"`
	InstructionsHTML template.HTML `json:"instructions_html"`
	Ingredients      []string      `json:"ingredients"`
	Tags             []string      `json:"tags,omitempty"`
	YouTube          string        `json:"youtube,omitempty"`
	Source           string        `json:"source,omitempty"`
}

// Skeleton is a placeholder card shown while a search is in flight.
type Skeleton struct {
	Index int
}

// Cards builds the result cards in order. Each card is delayed by a tenth
// of a second more than the previous one for the staggered entrance.
func Cards(recipes []types.RecipeDetail) []Card {
	cards := make([]Card, 0, len(recipes))
	for i, r := range recipes {
		cards = append(cards, Card{
			ID:        r.ID,
			Name:      r.Name,
			Thumbnail: r.Thumbnail,
			Category:  orDefault(r.Category, notAvailable),
			Style:     template.CSS(fmt.Sprintf("animation-delay: %.1fs", float64(i)*0.1)),
		})
	}
	return cards
}

// Skeletons returns n placeholder cards.
func Skeletons(n int) []Skeleton {
	out := make([]Skeleton, n)
	for i := range out {
		out[i].Index = i
	}
	return out
}

// NewDetail builds the modal content of a recipe.
func NewDetail(r types.RecipeDetail) Detail {
	instructions := orDefault(strings.TrimSpace(r.Instructions), noInstructions)
	return Detail{
		ID:               r.ID,
		Name:             r.Name,
		Image:            r.Thumbnail,
		Category:         orDefault(r.Category, notAvailable),
		Area:             r.Area,
		Instructions:     instructions,
		InstructionsHTML: RenderInstructions(instructions),
		Ingredients:      IngredientLines(r),
		Tags:             r.Tags,
		YouTube:          r.YouTube,
		Source:           r.Source,
	}
}

// IngredientLines lists the present ingredients in slot order.
func IngredientLines(r types.RecipeDetail) []string {
	lines := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if line := FormatIngredient(ing); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// FormatIngredient renders "<measure> <name>", or just the name when there
// is no measure.
func FormatIngredient(ing types.Ingredient) string {
	name := strings.TrimSpace(ing.Name)
	if name == "" {
		return ""
	}
	if measure := strings.TrimSpace(ing.Measure); measure != "" {
		return measure + " " + name
	}
	return name
}

// RenderInstructions converts free-text instructions to HTML. Line breaks
// are kept and raw HTML in the source is not passed through.
func RenderInstructions(text string) template.HTML {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var buf bytes.Buffer
	if err := instructionsMarkdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(text) + "</p>")
	}
	return template.HTML(buf.String())
}

// Heading is the caption above the results grid.
func Heading(term string, count int) string {
	noun := "recipes"
	if count == 1 {
		noun = "recipe"
	}
	// A Caser keeps state between calls and must not be shared.
	caser := cases.Title(language.English)
	return fmt.Sprintf("%d %s with %s", count, noun, caser.String(strings.TrimSpace(term)))
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
