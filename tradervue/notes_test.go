package tradervue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/notes", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("count"))
		w.Write([]byte(`{"journal_notes": [{"id": 4, "notes": "watch semis this week"}]}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	notes, err := c.GetNotes(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, notes, 1)
	assert.Equal(t, "watch semis this week", notes[0].Notes)
}

func TestCreateNote(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload = map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 5}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)

	t.Run("with notes", func(t *testing.T) {
		text := "earnings calendar"
		id, err := c.CreateNote(context.Background(), &text, false)
		require.NoError(t, err)
		assert.Equal(t, "5", id)
		assert.Equal(t, "earnings calendar", payload["notes"])
	})

	t.Run("empty note", func(t *testing.T) {
		_, err := c.CreateNote(context.Background(), nil, false)
		require.NoError(t, err)
		assert.Empty(t, payload)
	})
}

func TestGetNote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/notes/4", r.URL.Path)
		w.Write([]byte(`{"id": 4, "notes": "watch semis"}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	note, err := c.GetNote(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, "watch semis", note.Notes)
}

func TestUpdateAndDeleteNote(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)

	text := "updated"
	require.NoError(t, c.UpdateNote(context.Background(), "4", &text))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/api/v1/notes/4", path)

	require.NoError(t, c.DeleteNote(context.Background(), "4"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/v1/notes/4", path)
}
