package db

import "encoding/json"

// CategoryList decodes the room's categories column. An unset or malformed
// column reads as an empty list, which is how a lobby room starts.
func (r *Room) CategoryList() []string {
	if len(r.Categories) == 0 {
		return nil
	}
	var categories []string
	if err := json.Unmarshal(r.Categories, &categories); err != nil {
		return nil
	}
	return categories
}

// EncodeCategories serializes a category list for the jsonb column.
func EncodeCategories(categories []string) ([]byte, error) {
	if categories == nil {
		categories = []string{}
	}
	return json.Marshal(categories)
}
