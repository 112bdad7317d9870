package notify

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/mocks"
	"github.com/higher-steaks/hs-leaderboard/internal/store/schema"
)

func newTestNotifier(t *testing.T) (Notifier, *mocks.MockStore, *mocks.MockHTTPClient, *mocks.MockPriceClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	st := mocks.NewMockStore(ctrl)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	priceClient := mocks.NewMockPriceClient(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).AnyTimes()

	n := NewNotifier(st, httpClient, priceClient, clock, Config{
		AppURL:          "https://app.example.com",
		MinSupporterUSD: 10,
	})
	return n, st, httpClient, priceClient
}

func pushResponseBody(t *testing.T, invalid []string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"result": map[string]interface{}{
			"successfulTokens": []string{},
			"invalidTokens":    invalid,
		},
	})
	require.NoError(t, err)
	return body
}

func TestStakeExpiredSendsAndRecords(t *testing.T) {
	n, st, httpClient, _ := newTestNotifier(t)

	st.EXPECT().HasNotification(gomock.Any(), domain.NotificationStakeExpired, uint64(5), "42").Return(false, nil)
	st.EXPECT().EnabledTokens(gomock.Any(), uint64(5)).Return([]schema.NotificationToken{
		{Token: "tok-1", FID: 5, TargetURL: "https://push.example.com", Enabled: true},
	}, nil)

	httpClient.EXPECT().Post(gomock.Any(), "https://push.example.com", "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, body io.Reader) ([]byte, error) {
			raw, err := io.ReadAll(body)
			require.NoError(t, err)

			var req map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &req))
			assert.NotEmpty(t, req["notificationId"])
			assert.Equal(t, "https://app.example.com", req["targetUrl"])

			return pushResponseBody(t, nil), nil
		})

	st.EXPECT().RecordNotification(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record schema.NotificationRecord) error {
			assert.Equal(t, string(domain.NotificationStakeExpired), record.Type)
			assert.Equal(t, uint64(5), record.FID)
			assert.Equal(t, "42", record.ReferenceID)
			assert.NotEmpty(t, record.ID)
			return nil
		})

	require.NoError(t, n.StakeExpired(context.Background(), 5, 42))
}

func TestStakeExpiredDeduped(t *testing.T) {
	n, st, _, _ := newTestNotifier(t)

	st.EXPECT().HasNotification(gomock.Any(), domain.NotificationStakeExpired, uint64(5), "42").Return(true, nil)

	require.NoError(t, n.StakeExpired(context.Background(), 5, 42))
}

func TestStakeExpiredNoTokensSkipsWithoutRecord(t *testing.T) {
	n, st, _, _ := newTestNotifier(t)

	st.EXPECT().HasNotification(gomock.Any(), domain.NotificationStakeExpired, uint64(5), "42").Return(false, nil)
	st.EXPECT().EnabledTokens(gomock.Any(), uint64(5)).Return(nil, nil)

	require.NoError(t, n.StakeExpired(context.Background(), 5, 42))
}

func TestStakeExpiredInvalidTokensDisabled(t *testing.T) {
	n, st, httpClient, _ := newTestNotifier(t)

	st.EXPECT().HasNotification(gomock.Any(), domain.NotificationStakeExpired, uint64(5), "42").Return(false, nil)
	st.EXPECT().EnabledTokens(gomock.Any(), uint64(5)).Return([]schema.NotificationToken{
		{Token: "tok-dead", FID: 5, TargetURL: "https://push.example.com", Enabled: true},
	}, nil)
	httpClient.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(pushResponseBody(t, []string{"tok-dead"}), nil)
	st.EXPECT().DisableTokens(gomock.Any(), []string{"tok-dead"}).Return(nil)
	st.EXPECT().RecordNotification(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, n.StakeExpired(context.Background(), 5, 42))
}

func TestSupporterAddedBelowThresholdSuppressed(t *testing.T) {
	n, _, _, priceClient := newTestNotifier(t)

	oneToken := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	priceClient.EXPECT().TokenUSD(gomock.Any()).Return(5.0)

	// 1 token * $5 = $5 < $10: no dedup check, no send
	require.NoError(t, n.SupporterAdded(context.Background(), 9, 7, oneToken))
}

func TestSupporterAddedPriceFeedFailureFailsClosed(t *testing.T) {
	n, _, _, priceClient := newTestNotifier(t)

	huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)
	priceClient.EXPECT().TokenUSD(gomock.Any()).Return(0.0)

	require.NoError(t, n.SupporterAdded(context.Background(), 9, 7, huge))
}

func TestSupporterAddedAboveThresholdSends(t *testing.T) {
	n, st, httpClient, priceClient := newTestNotifier(t)

	tenTokens := new(big.Int).Mul(big.NewInt(10), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	priceClient.EXPECT().TokenUSD(gomock.Any()).Return(2.0)

	st.EXPECT().HasNotification(gomock.Any(), domain.NotificationSupporterAdded, uint64(9), "7").Return(false, nil)
	st.EXPECT().EnabledTokens(gomock.Any(), uint64(9)).Return([]schema.NotificationToken{
		{Token: "tok-1", FID: 9, TargetURL: "https://push.example.com", Enabled: true},
	}, nil)
	httpClient.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(pushResponseBody(t, nil), nil)
	st.EXPECT().RecordNotification(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, n.SupporterAdded(context.Background(), 9, 7, tenTokens))
}
