package domain

import (
	"context"
	"time"
)

type FormatType string

const (
	Format2D FormatType = "2d"
	Format3D FormatType = "3d"
)

type Showing struct {
	ID                   int
	HallID               int
	MovieID              int
	StartTime            time.Time
	EndTime              time.Time
	Language             string
	Subtitles            string
	Format               FormatType
	HallCapacity         int
	MovieDurationSeconds int
}

func (s *Showing) HasStarted(now time.Time) bool {
	return !now.Before(s.StartTime)
}

func (s *Showing) TimeToShowing(now time.Time) time.Duration {
	return s.StartTime.Sub(now)
}

type ShowingRepository interface {
	GetById(ctx context.Context, id int) (*Showing, error)
}
