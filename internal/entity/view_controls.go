package entity

import "context"

// StatusFilter is either FilterTodos or one of the lead statuses.
type StatusFilter string

const FilterTodos StatusFilter = "Todos"

func (f StatusFilter) IsValid() bool {
	return f == FilterTodos || Status(f).IsValid()
}

func (f StatusFilter) Matches(s Status) bool {
	return f == FilterTodos || Status(f) == s
}

type ViewControls struct {
	SearchText            string       `json:"searchText"`
	StatusFilter          StatusFilter `json:"statusFilter"`
	SortDescendingByScore bool         `json:"sortDescendingByScore"`
}

func DefaultViewControls() ViewControls {
	return ViewControls{
		SearchText:            "",
		StatusFilter:          FilterTodos,
		SortDescendingByScore: true,
	}
}

// PreferenceStore é o key-value onde as preferências de visualização ficam salvas.
// Get retorna found=false quando a chave não existe.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}
