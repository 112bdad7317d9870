package jetstream

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/mocks"
)

func newTestPublisher(t *testing.T) (*Publisher, *mocks.MockJetStream) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	njs := mocks.NewMockNatsJetStream(ctrl)
	conn := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	njs.EXPECT().Connect("nats://localhost:4222", gomock.Any(), gomock.Any()).Return(conn, js, nil)

	p, err := NewPublisher(njs, Config{URL: "nats://localhost:4222"})
	require.NoError(t, err)
	return p, js
}

func TestPublishEventSubjectPerType(t *testing.T) {
	p, js := newTestPublisher(t)

	event := domain.BroadcastEvent{
		ID:        "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Timestamp: time.Unix(1700000000, 0).UTC(),
		Type:      domain.EventTypeUnlock,
		Data:      domain.EventData{LockupID: 42},
	}

	js.EXPECT().Publish(gomock.Any(), "hs.lockups.unlock", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			var decoded domain.BroadcastEvent
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, event.ID, decoded.ID)
			assert.Equal(t, uint64(42), decoded.Data.LockupID)
			return &natsjs.PubAck{}, nil
		})

	require.NoError(t, p.PublishEvent(context.Background(), event))
}

func TestPublishEventFailure(t *testing.T) {
	p, js := newTestPublisher(t)

	js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("no responders"))

	err := p.PublishEvent(context.Background(), domain.BroadcastEvent{ID: "x", Type: domain.EventTypeTransfer})
	assert.Error(t, err)
}

func TestNewPublisherConnectFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	njs := mocks.NewMockNatsJetStream(ctrl)
	njs.EXPECT().Connect(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("connection refused"))

	_, err := NewPublisher(njs, Config{URL: "nats://down:4222"})
	assert.Error(t, err)
}
