package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/triptogether/triptogether/db"
	"github.com/triptogether/triptogether/db/tables"
	"github.com/triptogether/triptogether/invites"
	"github.com/triptogether/triptogether/trips"
)

var testTripID = uuid.MustParse("02b79cb8-9e3b-4b30-94f4-3e9e9f0c5908")
var testUserID = uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")

type fakeInvites struct {
	invitation     *invites.Invitation
	validateCalls  int
	validateFailOn int
	consumeCalls   int
	consumeErrs    []error
}

func (f *fakeInvites) Validate(_ context.Context, token string) (*invites.Invitation, error) {
	f.validateCalls++
	if f.validateFailOn > 0 && f.validateCalls >= f.validateFailOn {
		return nil, invites.ErrInviteInvalid
	}
	if f.invitation == nil || f.invitation.Token != token {
		return nil, invites.ErrInviteInvalid
	}
	return f.invitation, nil
}

func (f *fakeInvites) Consume(
	_ context.Context,
	token string,
	_ uuid.UUID,
) (*tables.InviteTokenTable, error) {
	f.consumeCalls++
	if len(f.consumeErrs) > 0 {
		err := f.consumeErrs[0]
		f.consumeErrs = f.consumeErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &tables.InviteTokenTable{Token: token, TripID: testTripID}, nil
}

type fakeRegistrar struct {
	registerCalls int
	err           error
}

func (f *fakeRegistrar) RegisterUser(
	_ context.Context,
	_ string,
	_ string,
	_ string,
) (uuid.UUID, error) {
	f.registerCalls++
	if f.err != nil {
		return uuid.UUID{}, f.err
	}
	return testUserID, nil
}

type fakeMembers struct {
	member   bool
	addErrs  []error
	addCalls int
	addRole  string
	addRSVP  string
}

func (f *fakeMembers) AddTripMember(
	_ context.Context,
	_ uuid.UUID,
	_ uuid.UUID,
	role string,
	rsvpStatus string,
) error {
	f.addCalls++
	f.addRole = role
	f.addRSVP = rsvpStatus
	if len(f.addErrs) > 0 {
		err := f.addErrs[0]
		f.addErrs = f.addErrs[1:]
		if err != nil {
			return err
		}
	}
	f.member = true
	return nil
}

func (f *fakeMembers) IsTripMember(_ context.Context, _ uuid.UUID, _ uuid.UUID) (bool, error) {
	return f.member, nil
}

func testInvitation() *invites.Invitation {
	return &invites.Invitation{
		ID:       uuid.New(),
		Token:    "dGVzdC10b2tlbg",
		Email:    "mika@example.com",
		TripID:   testTripID,
		TripName: "Lisbon long weekend",
		HostName: "Ada",
	}
}

func newTestFlow(
	t *testing.T,
	inv *fakeInvites,
	reg *fakeRegistrar,
	members *fakeMembers,
) *Flow {
	return NewFlow(inv, reg, members, zaptest.NewLogger(t))
}

func startedFlow(t *testing.T, inv *fakeInvites, reg *fakeRegistrar, members *fakeMembers) *Flow {
	flow := newTestFlow(t, inv, reg, members)
	err := flow.Start(context.Background(), inv.invitation.Token)
	assert.NoError(t, err)
	return flow
}

func TestFlowStartWithUnparsableLink(t *testing.T) {
	assert := assert.New(t)
	flow := newTestFlow(t, &fakeInvites{}, &fakeRegistrar{}, &fakeMembers{})
	err := flow.Start(context.Background(), "!!! not an invite !!!")
	assert.ErrorIs(err, invites.ErrInviteInvalid)
	assert.Equal(StateInvalid, flow.State())
}

func TestFlowStartWithUnknownToken(t *testing.T) {
	assert := assert.New(t)
	flow := newTestFlow(t, &fakeInvites{}, &fakeRegistrar{}, &fakeMembers{})
	err := flow.Start(context.Background(), "c29tZS11bmtub3du")
	assert.ErrorIs(err, invites.ErrInviteInvalid)
	assert.Equal(StateInvalid, flow.State())
}

func TestFlowStartWithValidLink(t *testing.T) {
	assert := assert.New(t)
	inv := &fakeInvites{invitation: testInvitation()}
	flow := newTestFlow(t, inv, &fakeRegistrar{}, &fakeMembers{})
	err := flow.Start(
		context.Background(),
		"https://triptogether.example.com/invite/dGVzdC10b2tlbg",
	)
	assert.NoError(err)
	assert.Equal(StateValid, flow.State())
	assert.Equal("Lisbon long weekend", flow.Invitation().TripName)
}

func TestFlowTransitionGuards(t *testing.T) {
	assert := assert.New(t)
	flow := newTestFlow(t, &fakeInvites{}, &fakeRegistrar{}, &fakeMembers{})
	assert.ErrorIs(flow.ShowChoices(), ErrInvalidTransition)
	assert.ErrorIs(flow.ChooseNewAccount(), ErrInvalidTransition)
	assert.ErrorIs(
		flow.SubmitNewAccount(context.Background(), validForm()),
		ErrInvalidTransition,
	)
	assert.ErrorIs(flow.RetryJoin(context.Background()), ErrInvalidTransition)
}

func TestFlowHappySignup(t *testing.T) {
	assert := assert.New(t)
	inv := &fakeInvites{invitation: testInvitation()}
	reg := &fakeRegistrar{}
	members := &fakeMembers{}
	flow := startedFlow(t, inv, reg, members)

	assert.NoError(flow.ShowChoices())
	assert.NoError(flow.ChooseNewAccount())
	assert.NoError(flow.SubmitNewAccount(context.Background(), validForm()))

	assert.Equal(StateSuccess, flow.State())
	assert.Equal(1, reg.registerCalls)
	assert.Equal(1, inv.consumeCalls)
	assert.Equal(1, members.addCalls)
	assert.Equal(trips.RoleGuest, members.addRole)
	assert.Equal(trips.RSVPAccepted, members.addRSVP)
	created, ok := flow.CreatedUserID()
	assert.True(ok)
	assert.Equal(testUserID, created)
}

func TestFlowSubmitLocalValidationFailure(t *testing.T) {
	assert := assert.New(t)
	inv := &fakeInvites{invitation: testInvitation()}
	reg := &fakeRegistrar{}
	flow := startedFlow(t, inv, reg, &fakeMembers{})
	assert.NoError(flow.ShowChoices())
	assert.NoError(flow.ChooseNewAccount())

	form := validForm()
	form.ConfirmPassword = "different1"
	err := flow.SubmitNewAccount(context.Background(), form)

	var verr *ValidationError
	assert.ErrorAs(err, &verr)
	assert.Equal("confirm_password", verr.Field)

	// no network call happened and the form stays open
	assert.Equal(StateNewAccountForm, flow.State())
	assert.Equal(0, reg.registerCalls)
	assert.Equal(0, inv.consumeCalls)
}

func TestFlowSubmitEmailMismatch(t *testing.T) {
	assert := assert.New(t)
	inv := &fakeInvites{invitation: testInvitation()}
	reg := &fakeRegistrar{}
	flow := startedFlow(t, inv, reg, &fakeMembers{})
	assert.NoError(flow.ShowChoices())
	assert.NoError(flow.ChooseNewAccount())

	form := validForm()
	form.Email = "someone.else@example.com"
	err := flow.SubmitNewAccount(context.Background(), form)

	assert.ErrorIs(err, ErrEmailMismatch)
	assert.Equal(StateNewAccountForm, flow.State())
	// no account was created and the token stays unconsumed
	assert.Equal(0, reg.registerCalls)
	assert.Equal(0, inv.consumeCalls)
}

func TestFlowSubmitEmailComparisonIsForgiving(t *testing.T) {
	assert := assert.New(t)
	inv := &fakeInvites{invitation: testInvitation()}
	flow := startedFlow(t, inv, &fakeRegistrar{}, &fakeMembers{})
	assert.NoError(flow.ShowChoices())
	assert.NoError(flow.ChooseNewAccount())

	form := validForm()
	form.Email = "  MIKA@Example.COM "
	assert.NoError(flow.SubmitNewAccount(context.Background(), form))
	assert.Equal(StateSuccess, flow.State())
}

func TestFlowTokenExpiresWhileFormOpen(t *testing.T) {
	assert := assert.New(t)
	inv := &fakeInvites{invitation: testInvitation(), validateFailOn: 2}
	reg := &fakeRegistrar{}
	flow := startedFlow(t, inv, reg, &fakeMembers{})
	assert.NoError(flow.ShowChoices())
	assert.NoError(flow.ChooseNewAccount())

	err := flow.SubmitNewAccount(context.Background(), validForm())
	assert.ErrorIs(err, invites.ErrInviteInvalid)
	assert.Equal(StateNewAccountForm, flow.State())
	assert.Equal(0, reg.registerCalls)
}

func TestFlowRegisterFailureSurfacedVerbatim(t *testing.T) {
	assert := assert.New(t)
	backendErr := errors.New("email is already taken")
	inv := &fakeInvites{invitation: testInvitation()}
	reg := &fakeRegistrar{err: backendErr}
	flow := startedFlow(t, inv, reg, &fakeMembers{})
	assert.NoError(flow.ShowChoices())
	assert.NoError(flow.ChooseNewAccount())

	err := flow.SubmitNewAccount(context.Background(), validForm())
	assert.ErrorIs(err, backendErr)
	assert.Equal(StateNewAccountForm, flow.State())
	assert.Equal(0, inv.consumeCalls)
}

func TestFlowJoinFailureKeepsAccountAndRetries(t *testing.T) {
	assert := assert.New(t)
	inv := &fakeInvites{invitation: testInvitation()}
	reg := &fakeRegistrar{}
	members := &fakeMembers{addErrs: []error{errors.New("connection reset")}}
	flow := startedFlow(t, inv, reg, members)
	assert.NoError(flow.ShowChoices())
	assert.NoError(flow.ChooseNewAccount())

	err := flow.SubmitNewAccount(context.Background(), validForm())
	assert.ErrorIs(err, ErrJoinIncomplete)
	assert.Equal(StateFailed, flow.State())
	assert.ErrorIs(flow.Failure(), ErrJoinIncomplete)
	created, ok := flow.CreatedUserID()
	assert.True(ok)
	assert.Equal(testUserID, created)

	assert.NoError(flow.RetryJoin(context.Background()))
	assert.Equal(StateSuccess, flow.State())
	// the account is created exactly once and the token consumed exactly once
	assert.Equal(1, reg.registerCalls)
	assert.Equal(1, inv.consumeCalls)
	assert.Equal(2, members.addCalls)
}

func TestFlowConsumeFailureThenRetry(t *testing.T) {
	assert := assert.New(t)
	inv := &fakeInvites{
		invitation:  testInvitation(),
		consumeErrs: []error{errors.New("connection reset")},
	}
	reg := &fakeRegistrar{}
	members := &fakeMembers{}
	flow := startedFlow(t, inv, reg, members)
	assert.NoError(flow.ShowChoices())
	assert.NoError(flow.ChooseNewAccount())

	err := flow.SubmitNewAccount(context.Background(), validForm())
	assert.ErrorIs(err, ErrJoinIncomplete)
	assert.Equal(StateFailed, flow.State())

	assert.NoError(flow.RetryJoin(context.Background()))
	assert.Equal(StateSuccess, flow.State())
	assert.Equal(1, reg.registerCalls)
	assert.Equal(2, inv.consumeCalls)
}

func TestFlowConsumeLostRaceButAlreadyMember(t *testing.T) {
	assert := assert.New(t)
	// parallel tab consumed the token and bound the membership already
	inv := &fakeInvites{
		invitation:  testInvitation(),
		consumeErrs: []error{invites.ErrInviteInvalid},
	}
	members := &fakeMembers{member: true}
	flow := startedFlow(t, inv, &fakeRegistrar{}, members)
	assert.NoError(flow.ShowChoices())
	assert.NoError(flow.ChooseNewAccount())

	assert.NoError(flow.SubmitNewAccount(context.Background(), validForm()))
	assert.Equal(StateSuccess, flow.State())
	assert.Equal(0, members.addCalls)
}

func TestFlowJoinExisting(t *testing.T) {
	assert := assert.New(t)
	inv := &fakeInvites{invitation: testInvitation()}
	members := &fakeMembers{}
	flow := startedFlow(t, inv, &fakeRegistrar{}, members)

	assert.NoError(flow.JoinExisting(context.Background(), testUserID))
	assert.Equal(StateSuccess, flow.State())
	assert.Equal(1, inv.consumeCalls)
	assert.Equal(1, members.addCalls)
	// the account existed before this flow, nothing was created here
	_, created := flow.CreatedUserID()
	assert.False(created)
}

func TestFlowJoinExistingLostRaceReportsNoCreatedAccount(t *testing.T) {
	assert := assert.New(t)
	// another user burnt the token first and the caller holds no
	// membership, the failure must not claim a fresh account exists
	inv := &fakeInvites{
		invitation:  testInvitation(),
		consumeErrs: []error{invites.ErrInviteInvalid},
	}
	members := &fakeMembers{}
	flow := startedFlow(t, inv, &fakeRegistrar{}, members)

	err := flow.JoinExisting(context.Background(), testUserID)
	assert.ErrorIs(err, ErrJoinIncomplete)
	assert.Equal(StateFailed, flow.State())
	_, created := flow.CreatedUserID()
	assert.False(created)

	// the retry still knows who was joining
	assert.NoError(flow.RetryJoin(context.Background()))
	assert.Equal(StateSuccess, flow.State())
	assert.Equal(1, members.addCalls)
}

func TestFlowJoinExistingToleratesExistingMembership(t *testing.T) {
	assert := assert.New(t)
	inv := &fakeInvites{invitation: testInvitation()}
	members := &fakeMembers{addErrs: []error{db.ErrAlreadyExists}}
	flow := startedFlow(t, inv, &fakeRegistrar{}, members)

	assert.NoError(flow.JoinExisting(context.Background(), testUserID))
	assert.Equal(StateSuccess, flow.State())
}

func TestFlowSessionChangedJoinsDirectly(t *testing.T) {
	assert := assert.New(t)
	inv := &fakeInvites{invitation: testInvitation()}
	members := &fakeMembers{}
	flow := startedFlow(t, inv, &fakeRegistrar{}, members)
	assert.NoError(flow.ShowChoices())

	// a session appeared out of band, say an oauth redirect came back
	assert.NoError(flow.SessionChanged(context.Background(), testUserID))
	assert.Equal(StateSuccess, flow.State())
	assert.Equal(1, inv.consumeCalls)
}

func TestFlowSessionChangedShortCircuitsForMembers(t *testing.T) {
	assert := assert.New(t)
	inv := &fakeInvites{invitation: testInvitation()}
	members := &fakeMembers{member: true}
	flow := startedFlow(t, inv, &fakeRegistrar{}, members)

	assert.NoError(flow.SessionChanged(context.Background(), testUserID))
	assert.Equal(StateSuccess, flow.State())
	// already a member, nothing gets consumed
	assert.Equal(0, inv.consumeCalls)
}

func TestFlowSessionChangedIgnoredWhileInvalid(t *testing.T) {
	assert := assert.New(t)
	flow := newTestFlow(t, &fakeInvites{}, &fakeRegistrar{}, &fakeMembers{})
	_ = flow.Start(context.Background(), "c29tZS11bmtub3du")
	assert.Equal(StateInvalid, flow.State())

	assert.NoError(flow.SessionChanged(context.Background(), testUserID))
	assert.Equal(StateInvalid, flow.State())
}
