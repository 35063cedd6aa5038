package entities

// Category is a top-level service category, e.g. "cat-1"
type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Icon          string        `json:"icon,omitempty"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

// Subcategory belongs to exactly one Category
type Subcategory struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
}

// City is a reference location grouped by state
type City struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}
