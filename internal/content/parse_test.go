package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseFencedJSON(t *testing.T) {
	raw := "Here is the content you asked for:\n```json\n" + `{
  "title": "Dumpster Rental Austin TX",
  "metaDescription": "Fast local dumpster rental.",
  "content": "<p>one two three</p>",
  "questions": [{"question": "How much?", "answer": "It depends."}],
  "keywords": ["dumpster rental austin"]
}` + "\n```\nLet me know if you need changes."

	got, err := ParseResponse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Dumpster Rental Austin TX", got.Title)
	assert.Equal(t, "Fast local dumpster rental.", got.MetaDescription)
	assert.Equal(t, 3, got.WordCount)
	assert.Equal(t, 1, got.QuestionsCount)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "How much?", got.Questions[0].Question)
	assert.Equal(t, []string{"dumpster rental austin"}, got.Keywords)
}

func TestParseResponseBareJSON(t *testing.T) {
	raw := `{"title": "T", "metaDescription": "M", "content": "<h2>Hi</h2> there"}`

	got, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.NotNil(t, got.Questions)
	assert.NotNil(t, got.Keywords)
	assert.Empty(t, got.Questions)
	assert.Equal(t, 0, got.QuestionsCount)
}

func TestParseResponseNoJSON(t *testing.T) {
	_, err := ParseResponse("I could not generate the content you asked for.")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "no JSON object")
}

func TestParseResponseInvalidJSON(t *testing.T) {
	_, err := ParseResponse(`{"title": "T", "metaDescription": `)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseResponseMissingRequiredFields(t *testing.T) {
	_, err := ParseResponse(`{"title": "T", "content": "C"}`)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "missing")
}

func TestCountWordsStripsTags(t *testing.T) {
	assert.Equal(t, 5, CountWords("<h2>Hello</h2><p>one two three four</p>"))
	assert.Equal(t, 0, CountWords("<br/><hr/>"))
	assert.Equal(t, 2, CountWords("plain text"))
}
