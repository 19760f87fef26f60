package models

// Organization owns every fleet record; all queries are scoped by it.
type Organization struct {
	Base
	Name string `json:"name" binding:"required"`
}
