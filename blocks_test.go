package hqvm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqsdk/hqvm/types"
)

func TestBlockDataRequest(t *testing.T) {
	s, caller, _ := newTestSession(func(call nativeCall) ([]byte, error) {
		return okResponse(""), nil
	})
	s.connected = true

	_, err := s.IndustryList()
	require.NoError(t, err)

	require.Len(t, caller.calls, 1)
	call := caller.calls[0]
	assert.Equal(t, "cmd.query_data.bk", call.method)
	assert.Contains(t, call.params, "&blockid=ce5f&reqflag=blockserve")
	assert.True(t, strings.HasPrefix(call.params, "\"id=7&instance="), call.params)
}

func TestBlockComponentsRequiresLinkCode(t *testing.T) {
	s, caller, _ := newTestSession(func(call nativeCall) ([]byte, error) {
		return okResponse(""), nil
	})
	s.connected = true

	_, err := s.BlockComponents("")
	var apiErr *types.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, caller.calls)

	_, err = s.BlockComponents("885866")
	require.NoError(t, err)
	assert.Contains(t, caller.calls[0].params, "&linkcode=885866\"")
}

func TestDirectoryCacheMemoizesBlockData(t *testing.T) {
	s, caller, _ := newTestSession(func(call nativeCall) ([]byte, error) {
		return []byte(`{"err_info":"","payload":{"result":["机械设备"]}}`), nil
	})
	s.connected = true
	s.EnableDirectoryCache()

	first, err := s.IndustryList()
	require.NoError(t, err)
	second, err := s.IndustryList()
	require.NoError(t, err)

	assert.Len(t, caller.calls, 1, "second lookup must come from the cache")
	assert.Equal(t, first.Payload.Result, second.Payload.Result)

	// A different directory misses the cache.
	_, err = s.ConceptList()
	require.NoError(t, err)
	assert.Len(t, caller.calls, 2)
}

func TestDirectoryCacheSkipsErrResponses(t *testing.T) {
	s, caller, _ := newTestSession(func(call nativeCall) ([]byte, error) {
		return okResponse("server busy"), nil
	})
	s.connected = true
	s.EnableDirectoryCache()

	_, err := s.IndexList()
	require.NoError(t, err)
	_, err = s.IndexList()
	require.NoError(t, err)
	assert.Len(t, caller.calls, 2, "responses with err_info are not cached")
}

func TestBlockDataWithoutCacheAlwaysQueries(t *testing.T) {
	s, caller, _ := newTestSession(func(call nativeCall) ([]byte, error) {
		return okResponse(""), nil
	})
	s.connected = true

	_, err := s.StockZhList()
	require.NoError(t, err)
	_, err = s.StockZhList()
	require.NoError(t, err)
	assert.Len(t, caller.calls, 2)
}
