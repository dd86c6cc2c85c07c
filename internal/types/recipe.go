package types

import "time"

// MaxIngredientSlots is the number of ingredient/measure slots a recipe record carries upstream.
const MaxIngredientSlots = 20

// RecipeSummary is the lightweight reference returned by the ingredient filter.
type RecipeSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`
}

// Ingredient is one present ingredient slot of a recipe. Position is the
// upstream slot index (1..20); Measure may be empty.
type Ingredient struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Measure  string `json:"measure,omitempty"`
}

// RecipeDetail represents a full recipe record
type RecipeDetail struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Thumbnail    string       `json:"thumbnail"`
	Category     string       `json:"category"`
	Area         string       `json:"area,omitempty"`
	Instructions string       `json:"instructions"`
	Tags         []string     `json:"tags,omitempty"`
	YouTube      string       `json:"youtube,omitempty"`
	Source       string       `json:"source,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
}

// ResultSet is the last successful search result owned by a presentation session.
type ResultSet struct {
	SessionID string         `json:"session_id"`
	Seq       uint64         `json:"seq"`
	Term      string         `json:"term"`
	Recipes   []RecipeDetail `json:"recipes"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Find returns the recipe with the given identifier.
func (rs *ResultSet) Find(id string) (*RecipeDetail, bool) {
	if rs == nil {
		return nil, false
	}
	for i := range rs.Recipes {
		if rs.Recipes[i].ID == id {
			return &rs.Recipes[i], true
		}
	}
	return nil, false
}
