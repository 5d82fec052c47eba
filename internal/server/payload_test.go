package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstTextMessage_OnlyFirstIsUsed(t *testing.T) {
	var p WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(`{"entry":[
		{"changes":[{"value":{"messages":[
			{"id":"a","from":"591700","type":"text","text":{"body":"1"}},
			{"id":"b","from":"591701","type":"text","text":{"body":"2"}}
		]}}]},
		{"changes":[{"value":{"messages":[{"id":"c","from":"591702","type":"text","text":{"body":"3"}}]}}]}
	]}`), &p))

	msg, ok := p.FirstTextMessage()
	require.True(t, ok)
	assert.Equal(t, "a", msg.ID)
	assert.Equal(t, "591700", msg.From)
	assert.Equal(t, "1", msg.Text.Body)
}

func TestFirstTextMessage_Missing(t *testing.T) {
	for _, body := range []string{
		`{}`,
		`{"entry":[]}`,
		`{"entry":[{"changes":[]}]}`,
		`{"entry":[{"changes":[{"value":{}}]}]}`,
		`{"entry":[{"changes":[{"value":{"messages":[{"id":"x","type":"text","text":{"body":"hola"}}]}}]}]}`,
	} {
		var p WebhookPayload
		require.NoError(t, json.Unmarshal([]byte(body), &p))
		_, ok := p.FirstTextMessage()
		assert.False(t, ok, body)
	}
}

func TestParsePayload_SkipsWrongTypedElements(t *testing.T) {
	p, err := ParsePayload([]byte(`{"entry":[{"changes":[{"value":{"messages":[{"id":"w1","from":"591700","text":{"body":"2"}}]}}]},"aasdasdasd"]}`))
	require.NoError(t, err)

	msg, ok := p.FirstTextMessage()
	require.True(t, ok)
	assert.Equal(t, "w1", msg.ID)
	assert.Equal(t, "2", msg.Text.Body)
}

func TestParsePayload_SyntaxErrorRejected(t *testing.T) {
	_, err := ParsePayload([]byte(`{"entry":`))
	assert.Error(t, err)
}
