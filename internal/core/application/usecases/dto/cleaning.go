package dto

import (
	"time"

	"production/internal/core/domain/model/cleaning"
)

type CleaningView struct {
	ID              string     `json:"id"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	StartedAt       *time.Time `json:"startedAt"`
	FinishedAt      *time.Time `json:"finishedAt"`
	DurationSeconds *int       `json:"durationSeconds"`
}

func NewCleaningView(c *cleaning.Cleaning) CleaningView {
	return CleaningView{
		ID:              c.ID().String(),
		Description:     c.Description(),
		Status:          c.Status().String(),
		CreatedAt:       c.CreatedAt(),
		StartedAt:       c.StartedAt(),
		FinishedAt:      c.FinishedAt(),
		DurationSeconds: c.DurationSeconds(),
	}
}

func NewCleaningViews(cleanings []*cleaning.Cleaning) []CleaningView {
	views := make([]CleaningView, 0, len(cleanings))
	for _, c := range cleanings {
		views = append(views, NewCleaningView(c))
	}
	return views
}

// DeletedCleaningView is the payload of the cleaning:deleted event.
type DeletedCleaningView struct {
	ID string `json:"id"`
}
