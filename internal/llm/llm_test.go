package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/nutrient"
)

type mockTextGenerator struct {
	response string
	err      error
	prompts  []string
}

func (m *mockTextGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

func kiwi() *catalog.FoodItem {
	f := &catalog.FoodItem{ID: "kiwi", Name: "Kiwi", Categories: []string{"fruit"}, Carbon: 0.2}
	f.Nutrients[nutrient.VitaminC] = 64
	return f
}

func TestFoodGrader_GradeFood(t *testing.T) {
	tests := []struct {
		name     string
		response string
		genErr   error
		want     float64
		wantErr  bool
	}{
		{name: "plain json", response: `{"score": 88, "reason": "whole fruit"}`, want: 88},
		{name: "fenced json", response: "```json\n{\"score\": 72}\n```", want: 72},
		{name: "out of range", response: `{"score": 140}`, wantErr: true},
		{name: "not json", response: "great food", wantErr: true},
		{name: "generator error", genErr: errors.New("quota"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockTextGenerator{response: tt.response, err: tt.genErr}
			got, err := NewFoodGrader(gen).GradeFood(context.Background(), kiwi())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.Len(t, gen.prompts, 1)
			assert.Contains(t, gen.prompts[0], "vitamin_c: 64.00 mg")
		})
	}
}

func TestCachedGrader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "grades.json")
	gen := &mockTextGenerator{response: `{"score": 91}`}

	cached, err := NewCachedGrader(NewFoodGrader(gen), path, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		grade, err := cached.GradeFood(context.Background(), kiwi())
		require.NoError(t, err)
		assert.Equal(t, 91.0, grade)
	}
	assert.Len(t, gen.prompts, 1)
	require.NoError(t, cached.SaveCache())

	// A fresh instance reads the persisted grades without calling the model.
	failing := &mockTextGenerator{err: errors.New("offline")}
	reloaded, err := NewCachedGrader(NewFoodGrader(failing), path, nil)
	require.NoError(t, err)
	grade, err := reloaded.GradeFood(context.Background(), kiwi())
	require.NoError(t, err)
	assert.Equal(t, 91.0, grade)
	assert.Empty(t, failing.prompts)
}

func TestGroqClient_GenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		var body groqRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "grader-model", body.Model)
		assert.Equal(t, map[string]string{"type": "json_object"}, body.ResponseFormat)
		assert.Equal(t, 0.1, body.Temperature)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "grade", body.Messages[1].Content)
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"score\": 40}"},"finish_reason":"stop"}]}`))
	}))
	defer ts.Close()

	c := &groqClient{apiKey: "key", model: "grader-model", endpoint: ts.URL, httpClient: ts.Client()}
	got, err := c.GenerateContent(context.Background(), "grade")
	require.NoError(t, err)
	assert.True(t, strings.Contains(got, "40"))

	t.Run("truncated reply", func(t *testing.T) {
		cutSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[{"message":{"content":"{\"score\": 4"},"finish_reason":"length"}]}`))
		}))
		defer cutSrv.Close()

		c := &groqClient{apiKey: "key", model: "grader-model", endpoint: cutSrv.URL, httpClient: cutSrv.Client()}
		_, err := c.GenerateContent(context.Background(), "grade")
		assert.ErrorContains(t, err, "truncated")
	})

	t.Run("api error", func(t *testing.T) {
		errSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer errSrv.Close()

		c := &groqClient{apiKey: "key", model: "grader-model", endpoint: errSrv.URL, httpClient: errSrv.Client()}
		_, err := c.GenerateContent(context.Background(), "grade")
		assert.Error(t, err)
	})
}
