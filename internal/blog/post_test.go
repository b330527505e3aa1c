package blog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestNewCardAppliesFallbacks(t *testing.T) {
	card := NewCard(Post{ID: "1"})
	assert.Equal(t, DefaultTitle, card.Title)
	assert.Equal(t, DefaultExcerpt, card.Excerpt)
	assert.Equal(t, DefaultImage, card.Image)
	assert.Equal(t, DefaultAuthor, card.Author)
	assert.Equal(t, DefaultDate, card.Date)

	full := NewCard(Post{ID: "2", Title: "Mùa dưa hấu", Author: "Lan", Date: "08:00, 2 tháng 3 năm 2026"})
	assert.Equal(t, "Mùa dưa hấu", full.Title)
	assert.Equal(t, "Lan", full.Author)
	assert.Equal(t, DefaultExcerpt, full.Excerpt)
}

func TestEngagementIsDeterministicAndInRange(t *testing.T) {
	for _, id := range []string{"1", "2", "bai-viet-dai", ""} {
		likes, comments := engagement(id)
		again, againComments := engagement(id)
		assert.Equal(t, likes, again)
		assert.Equal(t, comments, againComments)
		assert.GreaterOrEqual(t, likes, 10)
		assert.Less(t, likes, 10010)
		assert.GreaterOrEqual(t, comments, 0)
		assert.Less(t, comments, 1000)
	}
}

func TestNewDetailPassesContentThrough(t *testing.T) {
	d := NewDetail(Post{ID: "1", Content: "<p>Xin chào <b>GreenFarm</b></p>"})
	assert.Equal(t, "<p>Xin chào <b>GreenFarm</b></p>", d.Content)
	assert.Equal(t, "1", d.ID)
}

func TestDecodePosts(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"id":1,"title":"A"}`),
		json.RawMessage(`{"title":"no id"}`),
		json.RawMessage(`{"id":"1","title":"dup"}`),
		json.RawMessage(`{"id":[1]}`),
		json.RawMessage(`{"id":"2","title":"B","content":"<p>x</p>"}`),
	}
	posts, warnings := DecodePosts(raw)
	require.Len(t, posts, 2)
	assert.Equal(t, "A", posts[0].Title)
	assert.Equal(t, "2", posts[1].ID.String())
	assert.Len(t, multierr.Errors(warnings), 3)
}

func TestStore(t *testing.T) {
	s := NewStore([]Post{{ID: "1", Title: "A"}, {ID: "2"}})
	assert.Equal(t, 2, s.Len())

	p, ok := s.Get("2")
	require.True(t, ok)
	assert.Equal(t, "", p.Title)

	_, ok = s.Get("3")
	assert.False(t, ok)

	cards := s.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, DefaultTitle, cards[1].Title)

	var empty *Store
	assert.NotNil(t, empty.Cards())
}
