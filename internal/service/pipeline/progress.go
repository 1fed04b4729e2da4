package pipeline

import "github.com/mamadbah2/retailsheet/internal/domain/models"

// Progress stages reported by the pipeline.
const (
	StageWrite = "write"
	StageCount = "count"
	StageRead  = "read"
	StageClear = "clear"
)

// ProgressFunc receives progress events. It is called synchronously from the
// goroutine running the pipeline.
type ProgressFunc func(models.ProgressEvent)

func (p ProgressFunc) emit(stage string, done, total int, message string) {
	if p == nil {
		return
	}
	p(models.ProgressEvent{Stage: stage, Done: done, Total: total, Message: message})
}
