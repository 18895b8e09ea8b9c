package analysis

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeLinks(t *testing.T) {
	t.Run("keeps first occurrence in order", func(t *testing.T) {
		primary := []Link{{URL: "a", Title: "first"}}
		secondary := []Link{{URL: "a", Title: "second"}, {URL: "b"}}
		got := DedupeLinks(primary, secondary)
		want := []Link{{URL: "a", Title: "first"}, {URL: "b"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("DedupeLinks mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("duplicates within one list", func(t *testing.T) {
		got := DedupeLinks([]Link{{URL: "x"}, {URL: "y"}, {URL: "x"}}, nil)
		want := []Link{{URL: "x"}, {URL: "y"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("DedupeLinks mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("both empty", func(t *testing.T) {
		got := DedupeLinks(nil, []Link{})
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})
}

func TestReferenceLinks(t *testing.T) {
	var nilOutput *WebSearchOutput
	assert.Empty(t, nilOutput.ReferenceLinks())

	var nilResult *AnalysisResult
	assert.Empty(t, nilResult.Links())
	assert.True(t, nilResult.Entities().Empty())

	w := &WebSearchOutput{
		MostRelevant: []Link{{URL: "http://x", Title: "X"}},
		MostRecent:   []Link{{URL: "http://y"}, {URL: "http://x", Title: "X again"}},
	}
	got := w.ReferenceLinks()
	require.Len(t, got, 2)
	assert.Equal(t, "X", got[0].Title)
	assert.Equal(t, "http://y", got[1].DisplayTitle())
}

func TestLinkSourceDecoding(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "object", body: `{"url":"u","source":{"name":"Reuters"}}`, want: "Reuters"},
		{name: "string", body: `{"url":"u","source":"BBC"}`, want: "BBC"},
		{name: "null", body: `{"url":"u","source":null}`, want: ""},
		{name: "absent", body: `{"url":"u"}`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Link
			require.NoError(t, json.Unmarshal([]byte(tt.body), &l))
			assert.Equal(t, tt.want, l.SourceName())
		})
	}

	var l Link
	assert.Error(t, json.Unmarshal([]byte(`{"url":"u","source":42}`), &l))
}

func TestAnalysisResultDecoding(t *testing.T) {
	body := `{"query":"test case","summary_text":"**Summary**\nLine two",` +
		`"entity_output":{"accused":["Alice, Bob"]},` +
		`"websearch_output":{"most_relevant":[{"url":"http://x","title":"X"}]},` +
		`"cached":true,"vector_id":"v-1"}`

	var r AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	assert.Equal(t, "test case", r.Query)
	assert.True(t, r.Cached)
	assert.Equal(t, "v-1", r.VectorID)
	assert.Equal(t, []string{"Alice", "Bob"}, r.Entities().Accused)
	assert.Equal(t, []Link{{URL: "http://x", Title: "X"}}, r.Links())
	assert.Equal(t, []string{"Summary", "Line two"}, Paragraphs(r.SummaryText))
}
