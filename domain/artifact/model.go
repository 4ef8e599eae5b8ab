// Package artifact wraps operation outputs in the generic value+type+title
// container handed back to the host application.
package artifact

import (
	"time"

	"gostats/domain/core"
)

// Type classifies the wrapped value for the host's display layer.
type Type string

const (
	TypeDistribution Type = "distribution"
	TypeTable        Type = "table"
	TypeArray        Type = "array"
	TypePlot         Type = "plot"
	TypeText         Type = "text"
)

// Model is the result container: a typed value with a display title.
type Model struct {
	ID        core.ID   `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Value     any       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// New wraps a value in a fresh Model.
func New(value any, t Type, title string) Model {
	return Model{
		ID:        core.NewID(),
		Type:      t,
		Title:     title,
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}
}
