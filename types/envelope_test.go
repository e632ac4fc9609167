package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseDecodesWireNames(t *testing.T) {
	raw := `{"err_info":"oops","payload":{"result":[{"k":1}],"dict_extra":{"total":"2"}}}`

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	assert.Equal(t, "oops", resp.ErrInfo)
	assert.JSONEq(t, `[{"k":1}]`, string(resp.Payload.Result))
	assert.JSONEq(t, `"2"`, string(resp.Payload.DictExtra["total"]))
}

func TestResultRowsRoundTrip(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"result":[{"a":1},{"b":"x"}]}`), &p))

	rows, err := p.ResultRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1.0, rows[0]["a"])

	rows[0]["a"] = 2.0
	require.NoError(t, p.SetResultRows(rows))
	assert.JSONEq(t, `[{"a":2},{"b":"x"}]`, string(p.Result))
}

func TestResultRowsMissingResult(t *testing.T) {
	var p Payload
	rows, err := p.ResultRows()
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestResultRowsWrongShape(t *testing.T) {
	p := Payload{Result: json.RawMessage(`"a string"`)}
	_, err := p.ResultRows()
	require.Error(t, err)
}

func TestResultString(t *testing.T) {
	p := Payload{Result: json.RawMessage(`"hello"`)}
	s, ok := p.ResultString()
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	p.Result = json.RawMessage(`{"not":"a string"}`)
	_, ok = p.ResultString()
	assert.False(t, ok)
}
