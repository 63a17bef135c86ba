package service

import (
	"fmt"
	"time"
)

// TimeSequence derives the 5-digit counter from the unix clock. Two
// submissions in the same second collide, which is acceptable for the mock
// pipeline; this is explicitly a placeholder for a real sequence generator.
type TimeSequence struct{}

func (TimeSequence) Next(now time.Time) string {
	return fmt.Sprintf("ENQ-%d-%05d", now.Year(), now.Unix()%100000)
}
