package planner

import (
	"encoding/json"
	"testing"

	apperrors "github.com/nutriplan/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	text := "Sure! Here is your meal plan:\n```json\n{\"totalCost\": 280.5}\n```\nEnjoy!"

	raw, err := ExtractJSONObject(text)
	require.NoError(t, err)

	var payload map[string]float64
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, 280.5, payload["totalCost"])
}

func TestExtractJSONObjectNoBraces(t *testing.T) {
	_, err := ExtractJSONObject("I could not produce a meal plan, sorry.")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeMalformedResponse))

	appErr := err.(*apperrors.AppError)
	assert.Equal(t, "I could not produce a meal plan, sorry.", appErr.Metadata["raw_response"])
}

func TestExtractJSONObjectInvalidSpan(t *testing.T) {
	_, err := ExtractJSONObject("prefix {not valid json} suffix")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeMalformedResponse))
}

func TestExtractJSONArray(t *testing.T) {
	text := "Here are the scenes:\n[{\"visual\": \"pan shot\", \"duration\": 4}]\nDone."

	raw, err := ExtractJSONArray(text)
	require.NoError(t, err)

	var scenes []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &scenes))
	require.Len(t, scenes, 1)
	assert.Equal(t, "pan shot", scenes[0]["visual"])
}

func TestExtractJSONArrayMissing(t *testing.T) {
	_, err := ExtractJSONArray("{\"visual\": \"an object, not an array\"}")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeMalformedResponse))
}
