package handicapqueue

import (
	"time"

	handicapdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/domain"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// QueueName is the River queue posting jobs run on.
const QueueName = "posting"

// PostRoundJob posts one finished round. Jobs are unique by round.
type PostRoundJob struct {
	GameID    sharedtypes.GameID       `json:"game_id"`
	RoundID   sharedtypes.RoundID      `json:"round_id" river:"unique"`
	PlayedAt  time.Time                `json:"played_at"`
	Candidate handicapdomain.Candidate `json:"candidate"`
}

// Kind returns the job type identifier for River
func (PostRoundJob) Kind() string { return "post_round" }

// JobInfo describes a posting job (for debugging/monitoring)
type JobInfo struct {
	ID          int64  `json:"id"`
	RoundID     string `json:"round_id"`
	State       string `json:"state"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
