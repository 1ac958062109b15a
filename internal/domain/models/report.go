package models

// CategoryCount is the number of books recorded for one category value.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DailyRecap summarizes the entries recorded during one local day.
type DailyRecap struct {
	Date    string          `json:"date"`
	Total   int             `json:"total"`
	ByRayon []CategoryCount `json:"by_rayon"`
	ByEtat  []CategoryCount `json:"by_etat"`
}
