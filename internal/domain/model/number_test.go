package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberUnmarshal(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "integer", input: `80`, want: 80},
		{name: "decimal", input: `12.5`, want: 12.5},
		{name: "numeric string", input: `"80"`, want: 80},
		{name: "padded string", input: `" 12.5 "`, want: 12.5},
		{name: "empty string", input: `""`, want: 0},
		{name: "null", input: `null`, want: 0},
		{name: "word", input: `"abc"`, wantErr: true},
		{name: "nan string", input: `"NaN"`, wantErr: true},
		{name: "infinity string", input: `"Inf"`, wantErr: true},
		{name: "boolean", input: `true`, wantErr: true},
		{name: "object", input: `{}`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n model.Number
			err := json.Unmarshal([]byte(tc.input), &n)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, n.Float64())
		})
	}
}

func TestNumberInPatch(t *testing.T) {
	var p model.ScorePatch
	require.NoError(t, json.Unmarshal([]byte(`{"teamId":"t1","points":"42","badge":""}`), &p))
	require.NotNil(t, p.Points)
	assert.Equal(t, 42.0, p.Points.Float64())

	s := model.NewScore("s1", p)
	assert.Equal(t, 42.0, s.Points)
	assert.Nil(t, s.Badge, "empty badge must become null")

	var absent model.ScorePatch
	require.NoError(t, json.Unmarshal([]byte(`{"badge":null}`), &absent))
	assert.Nil(t, absent.Points)
	assert.Nil(t, absent.Badge)
}

func TestParseNumber(t *testing.T) {
	f, err := model.ParseNumber(" 3.25")
	require.NoError(t, err)
	assert.Equal(t, 3.25, f)

	_, err = model.ParseNumber("1e999")
	assert.ErrorIs(t, err, model.ErrNotANumber)
}
