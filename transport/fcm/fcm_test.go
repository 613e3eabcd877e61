package fcm

import (
	"context"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/queue"
	"github.com/wastemanagement/push-agent/queue/mock_queue"
)

var ctx = context.Background()

func TestToInbound(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, domain.InboundMessage{}, ToInbound(nil))
	})
	t.Run("notification and data", func(t *testing.T) {
		msg := ToInbound(&messaging.Message{
			Notification: &messaging.Notification{Title: "Pickup Today", Body: "Your bin will be collected at 9am"},
			Data:         map[string]string{"type": "pickup_scheduled"},
		})
		require.NotNil(t, msg.Display)
		assert.Equal(t, "Pickup Today", *msg.Display.Title)
		assert.Equal(t, "Your bin will be collected at 9am", *msg.Display.Body)
		assert.Equal(t, map[string]string{"type": "pickup_scheduled"}, msg.Data)
	})
	t.Run("empty notification", func(t *testing.T) {
		msg := ToInbound(&messaging.Message{Notification: &messaging.Notification{}})
		require.NotNil(t, msg.Display)
		assert.Nil(t, msg.Display.Title)
		assert.Nil(t, msg.Display.Body)
		assert.Equal(t, domain.DefaultTitle, domain.NewNotificationRequest(*msg.Display).Title)
	})
	t.Run("android notification", func(t *testing.T) {
		msg := ToInbound(&messaging.Message{
			Notification: &messaging.Notification{Body: "top"},
			Android: &messaging.AndroidConfig{
				Notification: &messaging.AndroidNotification{Title: "android", Body: "android body"},
			},
		})
		require.NotNil(t, msg.Display)
		assert.Equal(t, "android", *msg.Display.Title)
		assert.Equal(t, "top", *msg.Display.Body)
	})
	t.Run("data only", func(t *testing.T) {
		msg := ToInbound(&messaging.Message{Data: map[string]string{"type": "payment_received"}})
		assert.Nil(t, msg.Display)
		assert.Len(t, msg.Data, 1)
	})
}

func TestForwarder(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock_queue.NewMockQueue(ctrl)
	q.EXPECT().Name().Return(queue.CName).AnyTimes()
	q.EXPECT().Init(gomock.Any()).AnyTimes()
	q.EXPECT().Run(gomock.Any()).AnyTimes()
	q.EXPECT().Close(gomock.Any()).AnyTimes()

	f := New()
	a := new(app.App)
	a.Register(q).Register(f)
	require.NoError(t, a.Start(ctx))
	defer func() {
		require.NoError(t, a.Close(ctx))
	}()

	var events []queue.Event
	q.EXPECT().Add(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, event queue.Event) error {
		events = append(events, event)
		return nil
	}).Times(2)

	require.NoError(t, f.OnMessageReceived(ctx, &messaging.Message{Data: map[string]string{"type": "pickup_completed"}}))
	require.NoError(t, f.OnNewToken(ctx, "abc123"))

	require.Len(t, events, 2)
	assert.Equal(t, queue.EventMessage, events[0].Kind)
	assert.Equal(t, "pickup_completed", events[0].Message.Data["type"])
	assert.Equal(t, queue.EventToken, events[1].Kind)
	assert.Equal(t, domain.RegistrationToken("abc123"), events[1].Token)
}
