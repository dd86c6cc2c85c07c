package view

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealfinder/backend/internal/types"
)

func TestFormatIngredient(t *testing.T) {
	assert.Equal(t, "3/4 cup soy sauce", FormatIngredient(types.Ingredient{Name: "soy sauce", Measure: "3/4 cup"}))
	assert.Equal(t, "Salt", FormatIngredient(types.Ingredient{Name: "Salt"}))
	assert.Equal(t, "Salt", FormatIngredient(types.Ingredient{Name: "Salt", Measure: "  "}))
	assert.Equal(t, "", FormatIngredient(types.Ingredient{Measure: "1 tsp"}))
}

func TestIngredientLinesSkipAbsentSlots(t *testing.T) {
	r := types.RecipeDetail{Ingredients: []types.Ingredient{
		{Position: 1, Name: "Eggs", Measure: "2"},
		{Position: 2, Name: "Milk", Measure: "100ml"},
		{Position: 3, Name: "Salt"},
		{Position: 5, Name: "Butter", Measure: "knob"},
	}}

	lines := IngredientLines(r)

	require.Len(t, lines, 4)
	assert.Equal(t, "Salt", lines[2], "slot 3 has no measure prefix")
	assert.Equal(t, "knob Butter", lines[3], "slot 4 contributes nothing")
}

func TestCards(t *testing.T) {
	cards := Cards([]types.RecipeDetail{
		{ID: "1", Name: "Omelette", Category: "Breakfast", Thumbnail: "https://img/1.jpg"},
		{ID: "2", Name: "Mystery"},
		{ID: "3", Name: "Frittata", Category: "Vegetarian"},
	})

	require.Len(t, cards, 3)
	assert.Equal(t, "1", cards[0].ID)
	assert.Equal(t, "N/A", cards[1].Category)
	assert.Equal(t, "animation-delay: 0.0s", string(cards[0].Style))
	assert.Equal(t, "animation-delay: 0.2s", string(cards[2].Style))
}

func TestNewDetailDefaults(t *testing.T) {
	d := NewDetail(types.RecipeDetail{ID: "9", Name: "Toast", Thumbnail: "https://img/9.jpg"})

	assert.Equal(t, "N/A", d.Category)
	assert.Equal(t, "No instructions available.", d.Instructions)
	assert.Equal(t, "https://img/9.jpg", d.Image)
	assert.Empty(t, d.Ingredients)
	assert.Contains(t, string(d.InstructionsHTML), "No instructions available.")
}

func TestRenderInstructions(t *testing.T) {
	out := string(RenderInstructions("Preheat oven.\r\nMix well.\r\n\r\nBake <b>20</b> minutes."))

	assert.Equal(t, 2, strings.Count(out, "<p>"))
	assert.Contains(t, out, "<br")
	assert.NotContains(t, out, "<b>20</b>", "raw HTML is not passed through")
}

func TestSkeletons(t *testing.T) {
	assert.Len(t, Skeletons(3), 3)
	assert.Empty(t, Skeletons(0))
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "3 recipes with Chicken Breast", Heading("chicken breast", 3))
	assert.Equal(t, "1 recipe with Egg", Heading(" egg ", 1))
}

func TestHeadingConcurrent(t *testing.T) {
	const workers, calls = 50, 200
	var wg sync.WaitGroup
	results := make(chan string, workers*calls)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < calls; i++ {
				results <- Heading("chicken breast", 2)
			}
		}()
	}
	wg.Wait()
	close(results)

	for got := range results {
		require.Equal(t, "2 recipes with Chicken Breast", got)
	}
}
