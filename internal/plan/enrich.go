package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonathan/skill-gap-advisor/internal/prompts"
	"github.com/jonathan/skill-gap-advisor/internal/types"
	"golang.org/x/sync/errgroup"
)

// VideoQuery builds the search query for a week
func VideoQuery(focus, level string) string {
	q, err := prompts.Render(prompts.VideoQuery, prompts.VideoData{Skill: focus, Level: level})
	if err != nil {
		return fmt.Sprintf("%s tutorial for %s", focus, level)
	}
	return q
}

// enrich attaches videos to every week. Each week is isolated: a failing
// lookup leaves that week without videos and does not stop the others.
func (g *Generator) enrich(ctx context.Context, plan *types.LearningPlan, level string) {
	var eg errgroup.Group
	eg.SetLimit(g.concurrency)

	for i := range plan.Weeks {
		week := &plan.Weeks[i]
		if week.Videos == nil {
			week.Videos = []types.Video{}
		}
		if week.FocusSkill == "" {
			continue
		}

		eg.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					g.logger.Warn("video enrichment failed",
						slog.Int("week", week.Week),
						slog.Any("error", r))
				}
			}()

			found := g.searcher.Search(ctx, VideoQuery(week.FocusSkill, level), VideosPerWeek)
			if len(found) > VideosPerWeek {
				found = found[:VideosPerWeek]
			}
			if found != nil {
				week.Videos = found
			}
			return nil
		})
	}

	_ = eg.Wait()
}
