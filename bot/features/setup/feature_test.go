package setup

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lender/models"
	"lender/service"
)

type mockGuildConfigService struct {
	mock.Mock
}

var _ service.GuildConfigService = (*mockGuildConfigService)(nil)

func (m *mockGuildConfigService) Get(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildConfig), args.Error(1)
}

func (m *mockGuildConfigService) Put(ctx context.Context, guildID string, config *models.GuildConfig) error {
	args := m.Called(ctx, guildID, config)
	return args.Error(0)
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

func TestRun_TimeoutPersistsNothing(t *testing.T) {
	configService := new(mockGuildConfigService)
	f := New(configService, 30*time.Millisecond)
	require.True(t, f.claim("guild-1"))

	wizard := newSession("guild-1", "user-1")
	answers := make(chan string, maxAnswers)
	answers <- "12"

	removed := false
	f.run(testSession(t), "channel-1", wizard, answers, func() { removed = true })

	configService.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	assert.True(t, removed, "message listener should be removed")
	assert.True(t, f.claim("guild-1"), "guild should be claimable again after timeout")
}

func TestRun_AnswerQuotaExhaustedPersistsNothing(t *testing.T) {
	configService := new(mockGuildConfigService)
	f := New(configService, time.Minute)
	require.True(t, f.claim("guild-1"))

	wizard := newSession("guild-1", "user-1")
	answers := make(chan string, maxAnswers)
	for n := 0; n < maxAnswers; n++ {
		answers <- "not a number"
	}

	removed := false
	f.run(testSession(t), "channel-1", wizard, answers, func() { removed = true })

	configService.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	assert.True(t, removed, "message listener should be removed")
	assert.True(t, f.claim("guild-1"), "guild should be claimable again after exhaustion")
}

func TestHandleCommand_NonAdminDoesNotStartWizard(t *testing.T) {
	configService := new(mockGuildConfigService)
	f := New(configService, time.Minute)

	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "user-1"}},
	}}
	f.HandleCommand(testSession(t), i)

	configService.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	assert.True(t, f.claim("guild-1"), "no wizard session should be holding the guild")
}

func TestClaimAndRelease(t *testing.T) {
	f := New(new(mockGuildConfigService), time.Minute)

	assert.True(t, f.claim("guild-1"))
	assert.False(t, f.claim("guild-1"), "second claim on the same guild must fail")
	assert.True(t, f.claim("guild-2"), "other guilds are unaffected")

	f.release("guild-1")
	assert.True(t, f.claim("guild-1"))
}

func TestTimedOutEmbed(t *testing.T) {
	embed := timedOutEmbed(testSession(t), "guild-1")

	assert.Equal(t, "Setup Timed Out", embed.Title)
	assert.Equal(t, "Setup timed out. Please try again.", embed.Description)
	assert.Equal(t, 0xFF0000, embed.Color)
}
