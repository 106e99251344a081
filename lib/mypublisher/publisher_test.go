package mypublisher

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/shopcart/lib/myevents"
	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/lib/mypubsub"
	"github.com/MarcGrol/shopcart/lib/mytime"
)

type somethingHappened struct {
	UID string
}

func (e somethingHappened) GetEventTypeName() string { return "something.happened" }
func (e somethingHappened) GetAggregateUID() string  { return e.UID }

func TestPublish(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := context.TODO()

	// given
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).Times(2)
	pubsub := mypubsub.NewInMemoryPubSub()
	sut := New(pubsub, nower, mylog.New("test"))
	require.NoError(t, sut.CreateTopic(c, "thing"))

	// when
	require.NoError(t, sut.Publish(c, "thing", somethingHappened{UID: "42"}))
	require.NoError(t, sut.Publish(c, "thing", somethingHappened{UID: "42"}))

	// then
	messages := pubsub.Messages("thing")
	require.Len(t, messages, 2)

	envelope := myevents.EventEnvelope{}
	require.NoError(t, json.Unmarshal([]byte(messages[0]), &envelope))
	assert.Equal(t, "thing", envelope.Topic)
	assert.Equal(t, "42", envelope.AggregateUID)
	assert.Equal(t, "something.happened", envelope.EventTypeName)
	assert.Equal(t, `{"UID":"42"}`, envelope.EventPayload)
	assert.True(t, mytime.ExampleTime.Equal(envelope.CreatedAt))

	// same event, same uid
	again := myevents.EventEnvelope{}
	require.NoError(t, json.Unmarshal([]byte(messages[1]), &again))
	assert.Equal(t, envelope.UID, again.UID)
}

func TestPublishOnMissingTopic(t *testing.T) {
	sut := New(mypubsub.NewInMemoryPubSub(), mytime.RealNower{}, mylog.New("test"))

	err := sut.Publish(context.TODO(), "thing", somethingHappened{UID: "42"})

	assert.Error(t, err)
}
