package api

import (
	"context"

	"github.com/vytor/tradeskill/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	CurriculumService services.CurriculumService
	LessonService     services.LessonService
	DailyTestService  services.DailyTestService
	ProgressService   services.ProgressService
	Store             Pinger
}
