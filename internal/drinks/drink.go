package drinks

// RecipePart is one ingredient layer of a drink. Name is omitted from the
// summarized representation.
type RecipePart struct {
	Name  string `json:"name,omitempty"`
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// Drink is a menu item with its layered recipe.
type Drink struct {
	ID     int64        `json:"id"`
	Title  string       `json:"title"`
	Recipe []RecipePart `json:"recipe"`
}

// Short returns the summarized representation of the drink: the recipe keeps
// only colors and proportions.
func (d Drink) Short() Drink {
	recipe := make([]RecipePart, len(d.Recipe))
	for i, part := range d.Recipe {
		recipe[i] = RecipePart{
			Color: part.Color,
			Parts: part.Parts,
		}
	}
	return Drink{
		ID:     d.ID,
		Title:  d.Title,
		Recipe: recipe,
	}
}

// Long returns the full representation of the drink.
func (d Drink) Long() Drink {
	return d
}
