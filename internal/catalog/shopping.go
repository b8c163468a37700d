package catalog

// ShoppingEntry is one ingredient to buy for a set of recipes.
type ShoppingEntry struct {
	Name    string   `json:"name"`
	Unit    string   `json:"unit"`
	Amounts []string `json:"amounts"`
	Recipes []string `json:"recipes"`
}

// ShoppingList merges the ingredients of the given recipes. Ingredients are
// grouped by name and unit in first-seen order; amounts are free-form so
// every one is listed rather than summed. Unknown ids are skipped, and a
// recipe listed twice is counted once.
func (s *Store) ShoppingList(ids []int) []ShoppingEntry {
	type key struct{ name, unit string }

	out := []ShoppingEntry{}
	index := make(map[key]int)
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		recipe, ok := s.ItemByID(id)
		if !ok {
			continue
		}
		for _, ing := range recipe.Ingredients {
			k := key{ing.Name, ing.Unit}
			i, ok := index[k]
			if !ok {
				i = len(out)
				index[k] = i
				out = append(out, ShoppingEntry{Name: ing.Name, Unit: ing.Unit})
			}
			out[i].Amounts = append(out[i].Amounts, ing.Amount)
			out[i].Recipes = append(out[i].Recipes, recipe.Name)
		}
	}
	return out
}
