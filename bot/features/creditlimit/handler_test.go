package creditlimit

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lender/models"
	"lender/service"
)

type mockCreditService struct {
	mock.Mock
}

var _ service.CreditService = (*mockCreditService)(nil)

func (m *mockCreditService) AssignIfAbsent(ctx context.Context, userID string, level int) (*models.CreditProfile, bool, error) {
	args := m.Called(ctx, userID, level)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.CreditProfile), args.Bool(1), args.Error(2)
}

func (m *mockCreditService) Profile(ctx context.Context, userID string) (*models.CreditProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreditProfile), args.Error(1)
}

func (m *mockCreditService) Remaining(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCreditService) Reserve(ctx context.Context, userID string, amount int64) error {
	return m.Called(ctx, userID, amount).Error(0)
}

func (m *mockCreditService) Release(ctx context.Context, userID string, amount int64) error {
	return m.Called(ctx, userID, amount).Error(0)
}

// offlineTransport fails every request so Discord API calls error out
// immediately instead of reaching the network.
type offlineTransport struct{}

func (offlineTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("offline test session")
}

func testSession(t *testing.T) *discordgo.Session {
	t.Helper()
	s, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	s.Client = &http.Client{Transport: offlineTransport{}}
	return s
}

func TestHandleCommand_MissingUser(t *testing.T) {
	creditService := new(mockCreditService)
	f := New(creditService)

	// Neither Member nor User set on the interaction.
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}
	f.HandleCommand(testSession(t), i)

	creditService.AssertNotCalled(t, "Profile", mock.Anything, mock.Anything)
}
