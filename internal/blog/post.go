package blog

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/huydhb/greenfarm-backend/pkg/types"
	"go.uber.org/multierr"
)

const (
	DefaultTitle   = "Tiêu đề bài viết GreenFarm"
	DefaultExcerpt = "Đây là đoạn mô tả ngắn về bài viết, giới thiệu nội dung chính cho người đọc…"
	DefaultImage   = "images/branding/default-image.png"
	DefaultAuthor  = "GreenFarm"
	DefaultDate    = "00:00, 1 tháng 1 năm 2026"
)

// Post is a blog entry as stored in blogs.json. Content is HTML and is passed
// through untouched.
type Post struct {
	ID      types.FlexibleID `json:"id"`
	Title   string           `json:"title"`
	Excerpt string           `json:"excerpt"`
	Image   string           `json:"image"`
	Date    string           `json:"date"`
	Author  string           `json:"author"`
	Content string           `json:"content"`
}

// Card is a post with display fallbacks applied.
type Card struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Image    string `json:"image"`
	Date     string `json:"date"`
	Author   string `json:"author"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
}

// Detail is a card plus the post body.
type Detail struct {
	Card
	Content string `json:"content"`
}

func NewCard(p Post) Card {
	likes, comments := engagement(p.ID.String())
	return Card{
		ID:       p.ID.String(),
		Title:    fallback(p.Title, DefaultTitle),
		Excerpt:  fallback(p.Excerpt, DefaultExcerpt),
		Image:    fallback(p.Image, DefaultImage),
		Date:     fallback(p.Date, DefaultDate),
		Author:   fallback(p.Author, DefaultAuthor),
		Likes:    likes,
		Comments: comments,
	}
}

func NewDetail(p Post) Detail {
	return Detail{Card: NewCard(p), Content: p.Content}
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

// engagement derives decorative like and comment counts from the post id.
// They are placeholders with no backing data.
func engagement(id string) (likes, comments int) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	sum := h.Sum32()
	return int(sum%10000) + 10, int((sum / 10000) % 1000)
}

// DecodePosts decodes each element independently and drops posts without an
// id or with a repeated id. The error aggregates warnings only.
func DecodePosts(raw []json.RawMessage) ([]Post, error) {
	out := make([]Post, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	var warnings error
	for i, item := range raw {
		var p Post
		if err := json.Unmarshal(item, &p); err != nil {
			warnings = multierr.Append(warnings, fmt.Errorf("post %d: %w", i, err))
			continue
		}
		id := p.ID.String()
		if id == "" {
			warnings = multierr.Append(warnings, fmt.Errorf("post %d: missing id, dropped", i))
			continue
		}
		if _, dup := seen[id]; dup {
			warnings = multierr.Append(warnings, fmt.Errorf("post %d: duplicate id %q, dropped", i, id))
			continue
		}
		seen[id] = struct{}{}
		out = append(out, p)
	}
	return out, warnings
}
