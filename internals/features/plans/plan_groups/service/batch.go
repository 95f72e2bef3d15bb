// internals/features/plans/plan_groups/service/batch.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"studyku_backend/internals/constants"
	"studyku_backend/internals/features/plans/plan_groups/dto"
)

/* =========================
   Batch generation
   ========================= */

// RunBatch commits plan-group configurations for one or more students, in
// chunks of BatchSize with a pause between chunks so a big request does not
// monopolize the pool. Items without their own student id target
// defaultStudentID. Every commit is its own transaction; one failed item
// never aborts or rolls back the rest, and each result reports its own
// outcome.
func RunBatch(ctx context.Context, m *Materializer, defaultStudentID uuid.UUID, items []dto.BatchPlanItem) dto.BatchGenerateResponse {
	results := make([]dto.BatchItemResult, len(items))

	for offset := 0; offset < len(items); offset += constants.BatchSize {
		if ctx.Err() != nil {
			for i := offset; i < len(items); i++ {
				results[i] = dto.BatchItemResult{Index: i, StudentID: targetStudent(defaultStudentID, items[i]), Error: ctx.Err().Error()}
			}
			break
		}

		end := offset + constants.BatchSize
		if end > len(items) {
			end = len(items)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := offset; i < end; i++ {
			i := i
			g.Go(func() error {
				target := targetStudent(defaultStudentID, items[i])
				group, err := m.Commit(gctx, target, items[i].CreatePlanGroupRequest)
				if err != nil {
					results[i] = dto.BatchItemResult{Index: i, StudentID: target, Error: err.Error()}
					return nil // keep the rest of the chunk running
				}
				results[i] = dto.BatchItemResult{Index: i, StudentID: target, PlanGroupID: &group.PlanGroupID}
				return nil
			})
		}
		_ = g.Wait()

		if end < len(items) {
			select {
			case <-ctx.Done():
			case <-time.After(constants.BatchDelay):
			}
		}
	}

	resp := dto.BatchGenerateResponse{Results: results}
	for _, r := range results {
		if r.Error == "" && r.PlanGroupID != nil {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp
}

func targetStudent(defaultStudentID uuid.UUID, item dto.BatchPlanItem) uuid.UUID {
	if item.StudentID != nil && *item.StudentID != uuid.Nil {
		return *item.StudentID
	}
	return defaultStudentID
}
