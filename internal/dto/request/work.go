package request

type CreateWorkRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"min=0"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category" validate:"required,max=50"`
	Genre       []string `json:"genre,omitempty" validate:"omitempty,dive,max=50"`
}

type UpdateWorkRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,max=256"`
	Year        *int      `json:"year,omitempty" validate:"omitempty,min=0"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,max=50"`
	Genre       *[]string `json:"genre,omitempty" validate:"omitempty,dive,max=50"`
}

// WorkListFilter holds the supported list query params
type WorkListFilter struct {
	Category string
	Genre    string
	Name     string
	Year     *int
}
