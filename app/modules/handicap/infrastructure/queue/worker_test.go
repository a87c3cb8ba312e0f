package handicapqueue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	handicapdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/domain"
	handicapclient "github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/infrastructure/client"
	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	scoringmetrics "github.com/Black-And-White-Club/golf-scoring/app/shared/observability/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostingClient struct {
	requests []handicapclient.PostingRequest
	result   handicapclient.PostingResult
	err      error
}

func (f *fakePostingClient) PostRound(ctx context.Context, req handicapclient.PostingRequest) (handicapclient.PostingResult, error) {
	f.requests = append(f.requests, req)
	return f.result, f.err
}

type fakePublisher struct {
	mu  sync.Mutex
	out map[string][]*message.Message
	err error
}

func (f *fakePublisher) Publish(topic string, msgs ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.out == nil {
		f.out = map[string][]*message.Message{}
	}
	f.out[topic] = append(f.out[topic], msgs...)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func postJob() *river.Job[PostRoundJob] {
	return &river.Job[PostRoundJob]{
		JobRow: &rivertype.JobRow{ID: 7, Attempt: 1},
		Args: PostRoundJob{
			GameID:   "g1",
			RoundID:  "r1",
			PlayedAt: time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC),
			Candidate: handicapdomain.Candidate{
				RoundID:            "r1",
				PlayerID:           "p1",
				Scope:              "all18",
				GrossScore:         88,
				AdjustedGrossScore: 86,
				Differential:       12.7,
			},
		},
	}
}

func TestPostRoundWorker_Work(t *testing.T) {
	posted := time.Date(2026, 6, 7, 12, 0, 0, 0, time.UTC)
	est := 11.9
	tests := []struct {
		name        string
		client      *fakePostingClient
		pubErr      error
		wantErr     bool
		wantSuccess bool
		wantMsgs    int
	}{
		{
			name:        "posted",
			client:      &fakePostingClient{result: handicapclient.PostingResult{ID: "post-1", Success: true, EstimatedHandicap: &est}},
			wantSuccess: true,
			wantMsgs:    1,
		},
		{
			name:     "rejected by authority",
			client:   &fakePostingClient{result: handicapclient.PostingResult{Messages: []string{"course not rated"}}},
			wantMsgs: 1,
		},
		{
			name:    "authority unavailable",
			client:  &fakePostingClient{err: handicapclient.ErrPostingUnavailable},
			wantErr: true,
		},
		{
			name:    "publish fails",
			client:  &fakePostingClient{result: handicapclient.PostingResult{ID: "post-1", Success: true}},
			pubErr:  errors.New("nats down"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{err: tt.pubErr}
			w := NewPostRoundWorker(tt.client, pub, slog.Default(), scoringmetrics.NoOpMetrics{})
			w.now = func() time.Time { return posted }

			err := w.Work(context.Background(), postJob())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			require.Len(t, tt.client.requests, 1)
			req := tt.client.requests[0]
			assert.Equal(t, 86, req.AdjustedGrossScore)
			assert.Equal(t, "all18", req.Scope)

			msgs := pub.out[scoringevents.RoundPostingCompletedV1]
			require.Len(t, msgs, tt.wantMsgs)
			if tt.wantMsgs == 0 {
				return
			}
			var payload scoringevents.RoundPostingCompletedPayloadV1
			require.NoError(t, json.Unmarshal(msgs[0].Payload, &payload))
			assert.Equal(t, tt.wantSuccess, payload.Posting.Success)
			assert.Equal(t, posted, payload.Posting.PostedAt)
			assert.EqualValues(t, "r1", payload.RoundID)
		})
	}
}

func TestPostRoundJob_Kind(t *testing.T) {
	assert.Equal(t, "post_round", PostRoundJob{}.Kind())
	var _ river.JobArgs = PostRoundJob{}
}
