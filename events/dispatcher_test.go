package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type stubEvent struct {
	name EventName
}

func (e *stubEvent) Name() EventName {
	return e.name
}

type recordingListener struct {
	event  EventName
	calls  int
	err    error
	panics bool
}

func (l *recordingListener) ForEvent() EventName {
	return l.event
}

func (l *recordingListener) Handle(_ context.Context, _ Event) error {
	l.calls++
	if l.panics {
		panic("listener blew up")
	}
	return l.err
}

func TestDispatchReachesEverySubscribedListener(t *testing.T) {
	assert := assert.New(t)
	d := NewDispatcher(zaptest.NewLogger(t))
	first := &recordingListener{event: "invite_issued"}
	second := &recordingListener{event: "invite_issued"}
	other := &recordingListener{event: "member_joined"}
	d.Register(first, second, other)

	d.Dispatch(context.Background(), &stubEvent{name: "invite_issued"})

	assert.Equal(1, first.calls)
	assert.Equal(1, second.calls)
	assert.Equal(0, other.calls)
}

func TestDispatchWithoutListenersIsANoOp(t *testing.T) {
	d := NewDispatcher(zaptest.NewLogger(t))
	d.Dispatch(context.Background(), &stubEvent{name: "nobody_cares"})
}

func TestDispatchPanickingListenerSparesSiblings(t *testing.T) {
	assert := assert.New(t)
	d := NewDispatcher(zaptest.NewLogger(t))
	angry := &recordingListener{event: "invite_issued", panics: true}
	calm := &recordingListener{event: "invite_issued"}
	d.Register(angry, calm)

	d.Dispatch(context.Background(), &stubEvent{name: "invite_issued"})

	assert.Equal(1, angry.calls)
	assert.Equal(1, calm.calls)
}

func TestDispatchFailingListenerSparesSiblings(t *testing.T) {
	assert := assert.New(t)
	d := NewDispatcher(zaptest.NewLogger(t))
	broken := &recordingListener{event: "invite_issued", err: errors.New("write failed")}
	calm := &recordingListener{event: "invite_issued"}
	d.Register(broken, calm)

	d.Dispatch(context.Background(), &stubEvent{name: "invite_issued"})

	assert.Equal(1, broken.calls)
	assert.Equal(1, calm.calls)
}
