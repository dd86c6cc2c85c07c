package mealdb

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	apperrors "github.com/pageza/mealfinder/backend/internal/errors"
	"github.com/pageza/mealfinder/backend/internal/types"
)

// decodeSummaries parses a filter response. A null or missing "meals" field
// is the API's no-match sentinel and yields a nil slice.
func decodeSummaries(body []byte) ([]types.RecipeSummary, error) {
	if !gjson.ValidBytes(body) {
		return nil, apperrors.Dataf("invalid JSON in filter response")
	}

	meals := gjson.GetBytes(body, "meals")
	if !meals.Exists() || meals.Type == gjson.Null {
		return nil, nil
	}
	if !meals.IsArray() {
		return nil, apperrors.Dataf("filter response: meals is not a list")
	}

	entries := meals.Array()
	summaries := make([]types.RecipeSummary, 0, len(entries))
	for i, m := range entries {
		if !m.IsObject() {
			return nil, apperrors.Dataf("filter response: entry %d is not an object", i)
		}
		id := field(m, "idMeal")
		if id == "" {
			return nil, apperrors.Dataf("filter response: entry %d has no idMeal", i)
		}
		summaries = append(summaries, types.RecipeSummary{
			ID:        id,
			Name:      field(m, "strMeal"),
			Thumbnail: field(m, "strMealThumb"),
		})
	}
	return summaries, nil
}

// decodeDetail parses a lookup response and returns its first record.
func decodeDetail(body []byte) (*types.RecipeDetail, error) {
	if !gjson.ValidBytes(body) {
		return nil, apperrors.Dataf("invalid JSON in lookup response")
	}

	meals := gjson.GetBytes(body, "meals")
	if !meals.IsArray() {
		return nil, apperrors.Dataf("lookup response has no meals list")
	}
	entries := meals.Array()
	if len(entries) == 0 {
		return nil, apperrors.Dataf("lookup response has an empty meals list")
	}

	m := entries[0]
	if !m.IsObject() {
		return nil, apperrors.Dataf("lookup response record is not an object")
	}
	id := field(m, "idMeal")
	if id == "" {
		return nil, apperrors.Dataf("lookup response record has no idMeal")
	}

	return &types.RecipeDetail{
		ID:           id,
		Name:         field(m, "strMeal"),
		Thumbnail:    field(m, "strMealThumb"),
		Category:     field(m, "strCategory"),
		Area:         field(m, "strArea"),
		Instructions: field(m, "strInstructions"),
		Tags:         splitTags(field(m, "strTags")),
		YouTube:      field(m, "strYoutube"),
		Source:       field(m, "strSource"),
		Ingredients:  ingredients(m),
	}, nil
}

// ingredients collects the present strIngredientN/strMeasureN slots in order.
// Blank ingredients leave their slot empty; a measure never stands alone.
func ingredients(m gjson.Result) []types.Ingredient {
	var out []types.Ingredient
	for i := 1; i <= types.MaxIngredientSlots; i++ {
		name := field(m, fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		out = append(out, types.Ingredient{
			Position: i,
			Name:     name,
			Measure:  field(m, fmt.Sprintf("strMeasure%d", i)),
		})
	}
	return out
}

func field(m gjson.Result, key string) string {
	return strings.TrimSpace(m.Get(key).String())
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
