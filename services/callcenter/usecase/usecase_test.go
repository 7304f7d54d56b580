package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ringdesk/callhub/internal/pkg/constants"
	"github.com/ringdesk/callhub/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifyGW struct {
	requestAttempt *models.VerificationAttempt
	checkAttempt   *models.VerificationAttempt
	err            error

	requestCalls int
	checkCalls   int
	lastTo       string
	lastChannel  string
	lastCode     string
}

func (f *fakeVerifyGW) RequestCode(_ context.Context, to, channel string) (*models.VerificationAttempt, error) {
	f.requestCalls++
	f.lastTo = to
	f.lastChannel = channel
	return f.requestAttempt, f.err
}

func (f *fakeVerifyGW) CheckCode(_ context.Context, to, code string) (*models.VerificationAttempt, error) {
	f.checkCalls++
	f.lastTo = to
	f.lastCode = code
	return f.checkAttempt, f.err
}

type broadcastRecord struct {
	Event string
	Data  interface{}
}

type fakeBroadcaster struct {
	events []broadcastRecord
}

func (f *fakeBroadcaster) Broadcast(event string, data interface{}) {
	f.events = append(f.events, broadcastRecord{Event: event, Data: data})
}

func (f *fakeBroadcaster) byEvent(event string) []broadcastRecord {
	var out []broadcastRecord
	for _, rec := range f.events {
		if rec.Event == event {
			out = append(out, rec)
		}
	}
	return out
}

type fakeEventGW struct {
	events []broadcastRecord
}

func (f *fakeEventGW) Publish(event string, payload interface{}) {
	f.events = append(f.events, broadcastRecord{Event: event, Data: payload})
}

func newTestUC() (*CallCenterUC, *fakeVerifyGW, *fakeBroadcaster, *fakeEventGW) {
	verifyGW := &fakeVerifyGW{}
	broadcaster := &fakeBroadcaster{}
	eventGW := &fakeEventGW{}
	cfg := &models.Config{
		JWT: models.JWTConfig{Secret: "test-secret", Issuer: "callhub-test", Expiration: 60},
	}
	return NewCallCenterUC(verifyGW, eventGW, broadcaster, cfg), verifyGW, broadcaster, eventGW
}

func TestRequestCode_ValidatesBeforeProvider(t *testing.T) {
	uc, verifyGW, _, _ := newTestUC()

	_, err := uc.RequestCode(context.Background(), "not-a-number", "sms")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, verifyGW.requestCalls)
}

func TestRequestCode_PassesThrough(t *testing.T) {
	uc, verifyGW, _, _ := newTestUC()
	verifyGW.requestAttempt = &models.VerificationAttempt{
		Status: models.VerificationStatusPending,
		To:     "+14155551234",
	}

	attempt, err := uc.RequestCode(context.Background(), "+14155551234", "sms")
	require.NoError(t, err)
	assert.Equal(t, 1, verifyGW.requestCalls)
	assert.Equal(t, "+14155551234", verifyGW.lastTo)
	assert.Equal(t, models.VerificationStatusPending, attempt.Status)
}

func TestVerifyCode_ApprovedIssuesCredential(t *testing.T) {
	uc, verifyGW, _, _ := newTestUC()
	verifyGW.checkAttempt = &models.VerificationAttempt{
		Status: models.VerificationStatusApproved,
		To:     "+14155551234",
		Valid:  true,
	}

	attempt, auth, err := uc.VerifyCode(context.Background(), "+14155551234", "123456")
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.True(t, attempt.Approved())
	assert.NotEmpty(t, auth.Token)
	assert.Positive(t, auth.ExpiresAt)

	claims, err := uc.RefreshToken(auth.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.Token)
}

func TestVerifyCode_PendingIssuesNoCredential(t *testing.T) {
	uc, verifyGW, _, _ := newTestUC()
	verifyGW.checkAttempt = &models.VerificationAttempt{
		Status: models.VerificationStatusPending,
		To:     "+14155551234",
	}

	attempt, auth, err := uc.VerifyCode(context.Background(), "+14155551234", "000000")
	require.NoError(t, err)
	assert.Nil(t, auth)
	assert.False(t, attempt.Approved())
}

func TestVerifyCode_ValidatesBeforeProvider(t *testing.T) {
	uc, verifyGW, _, _ := newTestUC()

	_, _, err := uc.VerifyCode(context.Background(), "+14155551234", "12")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = uc.VerifyCode(context.Background(), "bad", "123456")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Zero(t, verifyGW.checkCalls)
}

func TestVerifyCode_ProviderErrorPassesThrough(t *testing.T) {
	uc, verifyGW, _, _ := newTestUC()
	providerErr := errors.New("provider unreachable")
	verifyGW.err = providerErr

	_, _, err := uc.VerifyCode(context.Background(), "+14155551234", "123456")
	assert.ErrorIs(t, err, providerErr)
}

func TestUpdateAgentStatus_Broadcasts(t *testing.T) {
	uc, _, broadcaster, eventGW := newTestUC()

	update := uc.UpdateAgentStatus("+14155551234", models.AgentStatusBusy)
	assert.Equal(t, "+14155551234", update.AgentID)
	assert.Equal(t, models.AgentStatusBusy, update.Status)
	assert.False(t, update.Timestamp.IsZero())

	records := broadcaster.byEvent(constants.EventAgentStatusUpdated)
	require.Len(t, records, 1)
	assert.Equal(t, update, records[0].Data)

	// Mirrored to the external event stream too
	require.Len(t, eventGW.events, 1)
	assert.Equal(t, constants.EventAgentStatusUpdated, eventGW.events[0].Event)
}

func TestAcceptCall_RemovesFromQueue(t *testing.T) {
	uc, _, broadcaster, _ := newTestUC()

	snapshot := uc.QueueSnapshot()
	require.Equal(t, 2, snapshot.Length)
	queued := snapshot.Calls[0]

	event := uc.AcceptCall("+14155551234", queued.ID)
	assert.Equal(t, queued.ID, event.CallID)
	assert.Equal(t, "+14155551234", event.AgentID)
	assert.Equal(t, queued.Caller, event.Caller)
	assert.Equal(t, "connected", event.Status)

	assert.Equal(t, 1, uc.QueueSnapshot().Length)

	require.Len(t, broadcaster.byEvent(constants.EventCallConnected), 1)
	require.Len(t, broadcaster.byEvent(constants.EventQueueUpdated), 1)
}

func TestAcceptCall_UnknownCallStillConnects(t *testing.T) {
	uc, _, broadcaster, _ := newTestUC()

	event := uc.AcceptCall("+14155551234", "no-such-call")
	assert.Equal(t, "no-such-call", event.CallID)
	assert.Empty(t, event.Caller)
	assert.Equal(t, 2, uc.QueueSnapshot().Length)
	require.Len(t, broadcaster.byEvent(constants.EventCallConnected), 1)
}

func TestEndCall_Broadcasts(t *testing.T) {
	uc, _, broadcaster, _ := newTestUC()

	event := uc.EndCall("+14155551234", "call-1")
	assert.Equal(t, "ended", event.Status)

	records := broadcaster.byEvent(constants.EventCallEnded)
	require.Len(t, records, 1)
}

func TestTransferCall_Broadcasts(t *testing.T) {
	uc, _, broadcaster, _ := newTestUC()

	event := uc.TransferCall("+14155551234", "call-1", "+14155559999")
	assert.Equal(t, "transferred", event.Status)
	assert.Equal(t, "+14155559999", event.TargetAgentID)

	records := broadcaster.byEvent(constants.EventCallTransferred)
	require.Len(t, records, 1)
}

func TestSimulateIncomingCall_GrowsQueue(t *testing.T) {
	uc, _, broadcaster, _ := newTestUC()

	event := uc.SimulateIncomingCall("+14155551234")
	assert.Equal(t, "ringing", event.Status)
	assert.Equal(t, "+14155551234", event.AgentID)
	assert.NotEmpty(t, event.CallID)
	assert.NotEmpty(t, event.Caller)

	snapshot := uc.QueueSnapshot()
	assert.Equal(t, 3, snapshot.Length)
	require.Len(t, broadcaster.byEvent(constants.EventQueueUpdated), 1)

	// The incoming call event itself is unicast by the transport layer,
	// not broadcast here.
	assert.Empty(t, broadcaster.byEvent(constants.EventCallIncoming))
}

func TestQueueSnapshot_RecomputesWaitTimes(t *testing.T) {
	uc, _, _, _ := newTestUC()

	snapshot := uc.QueueSnapshot()
	assert.Equal(t, 2, snapshot.Length)
	assert.False(t, snapshot.UpdatedAt.IsZero())

	longest := 0
	for _, entry := range snapshot.Calls {
		assert.GreaterOrEqual(t, entry.WaitTime, 0)
		if entry.WaitTime > longest {
			longest = entry.WaitTime
		}
	}
	assert.Equal(t, longest, snapshot.WaitTime)
}
