// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mqx

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ecodeclub/mq-api/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	SN     string `json:"sn"`
	Amount int64  `json:"amount"`
}

func TestJSONProducer_Produce(t *testing.T) {
	const topic = "mqx_test_events"
	q := NewTraceMQ(memory.NewMQ())
	require.NoError(t, q.CreateTopic(context.Background(), topic, 1))

	consumer, err := q.Consumer(topic, "mqx_test")
	require.NoError(t, err)
	producer, err := NewJSONProducer[testEvent](q, topic)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	want := testEvent{SN: "SO001", Amount: 300}
	require.NoError(t, producer.Produce(ctx, want.SN, want))

	msg, err := consumer.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(want.SN), msg.Key)
	var got testEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, want, got)
}
