package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultPlainJSON(t *testing.T) {
	res, err := parseResult(`{"calories_detected": 450, "response_message": "Nasi goreng, 450 kcal 🍛"}`)

	require.NoError(t, err)
	assert.Equal(t, 450, res.CaloriesDetected)
	assert.Equal(t, "Nasi goreng, 450 kcal 🍛", res.ResponseMessage)
}

func TestParseResultFencedJSON(t *testing.T) {
	raw := "```json\n{\"calories_detected\": 120.6, \"response_message\": \"A banana, light snack! 🍌\"}\n```"

	res, err := parseResult(raw)

	require.NoError(t, err)
	assert.Equal(t, 121, res.CaloriesDetected, "fractional detections are rounded")
}

func TestParseResultLeadingProse(t *testing.T) {
	raw := "Sure! Here is the analysis:\n{\"calories_detected\": 0, \"response_message\": \"That's not food 😄\"}"

	res, err := parseResult(raw)

	require.NoError(t, err)
	assert.Equal(t, 0, res.CaloriesDetected)
}

func TestParseResultFailures(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"no JSON":          "I had a great meal!",
		"broken JSON":      `{"calories_detected": `,
		"missing calories": `{"response_message": "hi"}`,
		"missing message":  `{"calories_detected": 300}`,
	}

	for name, raw := range cases {
		_, err := parseResult(raw)
		assert.Error(t, err, name)
	}
}
