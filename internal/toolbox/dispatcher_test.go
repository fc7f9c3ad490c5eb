package toolbox

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannvm/ai-toolbox/internal/models"
)

func TestDispatcherPost(t *testing.T) {
	api := newFakeAPI(t)
	d := NewDispatcher(api.server.URL + "/")

	var resp models.GenerationResponse
	err := d.Post(context.Background(), EndpointSocialGenerate, map[string]string{"topic": "x"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "generated text", resp.Result)

	calls := api.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, EndpointSocialGenerate, calls[0].Path)
	assert.Equal(t, "application/json", calls[0].ContentType)
}

func TestDispatcherNon2xx(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.StatusBadGateway, "")

	var resp models.GenerationResponse
	err := api.dispatcher().Post(context.Background(), EndpointJiraGenerate, struct{}{}, &resp)
	require.Error(t, err)
	assert.True(t, IsRequestFailed(err))

	var rf *RequestFailedError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, http.StatusBadGateway, rf.StatusCode)
	assert.NotContains(t, NoticeFor(err).Description, "502")
}

func TestDispatcherTransportError(t *testing.T) {
	d := NewDispatcher("http://127.0.0.1:1")

	var resp models.GenerationResponse
	err := d.Post(context.Background(), EndpointSocialGenerate, struct{}{}, &resp)
	require.Error(t, err)
	assert.True(t, IsRequestFailed(err))
}
