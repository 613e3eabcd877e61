package classifier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wastemanagement/push-agent/classifier"
	"github.com/wastemanagement/push-agent/classifier/mock_classifier"
	"github.com/wastemanagement/push-agent/domain"
)

var ctx = context.Background()

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		name string
		data map[string]string
		want domain.DataMessageType
	}{
		{"nil map", nil, domain.AbsentType()},
		{"no type key", map[string]string{"pickupId": "1"}, domain.AbsentType()},
		{"pickup scheduled", map[string]string{"type": "pickup_scheduled"}, domain.KnownType(domain.DataKindPickupScheduled)},
		{"pickup completed", map[string]string{"type": "pickup_completed", "at": "9am"}, domain.KnownType(domain.DataKindPickupCompleted)},
		{"payment received", map[string]string{"type": "payment_received"}, domain.KnownType(domain.DataKindPaymentReceived)},
		{"other value", map[string]string{"type": "promo"}, domain.UnknownType("promo")},
		{"case differs", map[string]string{"type": "Pickup_Scheduled"}, domain.UnknownType("Pickup_Scheduled")},
		{"empty value", map[string]string{"type": ""}, domain.UnknownType("")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifier.Classify(tc.data))
		})
	}
}

func TestClassifier_Route(t *testing.T) {
	t.Run("handler called", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := mock_classifier.NewMockHandler(ctrl)
		c := classifier.New()
		c.RegisterHandler(domain.DataKindPaymentReceived, h)
		data := map[string]string{"type": "payment_received", "amount": "10"}
		h.EXPECT().HandleData(ctx, domain.KnownType(domain.DataKindPaymentReceived), data).Return(nil)

		res, err := c.Route(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, domain.DataKindPaymentReceived, res.Kind)
	})
	t.Run("no handler", func(t *testing.T) {
		c := classifier.New()
		res, err := c.Route(ctx, map[string]string{"type": "pickup_completed"})
		require.NoError(t, err)
		assert.Equal(t, domain.KnownType(domain.DataKindPickupCompleted), res)
	})
	t.Run("unknown skips handlers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := mock_classifier.NewMockHandler(ctrl)
		c := classifier.New()
		c.RegisterHandler(domain.DataKindUnknown, h)
		res, err := c.Route(ctx, map[string]string{"type": "promo"})
		require.NoError(t, err)
		assert.Equal(t, domain.UnknownType("promo"), res)
	})
	t.Run("handler error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := mock_classifier.NewMockHandler(ctrl)
		c := classifier.New()
		c.RegisterHandler(domain.DataKindPickupScheduled, h)
		testErr := errors.New("test")
		h.EXPECT().HandleData(ctx, gomock.Any(), gomock.Any()).Return(testErr)

		res, err := c.Route(ctx, map[string]string{"type": "pickup_scheduled"})
		require.ErrorIs(t, err, testErr)
		assert.Equal(t, domain.DataKindPickupScheduled, res.Kind)
	})
}
