package blog

// Store holds the posts loaded at startup. Read-only after NewStore.
type Store struct {
	posts []Post
	byID  map[string]int
}

func NewStore(posts []Post) *Store {
	s := &Store{
		posts: make([]Post, len(posts)),
		byID:  make(map[string]int, len(posts)),
	}
	copy(s.posts, posts)
	for i, p := range s.posts {
		if _, ok := s.byID[p.ID.String()]; !ok {
			s.byID[p.ID.String()] = i
		}
	}
	return s
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.posts)
}

// Cards lists every post with display fallbacks, in file order.
func (s *Store) Cards() []Card {
	if s == nil {
		return []Card{}
	}
	out := make([]Card, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, NewCard(p))
	}
	return out
}

func (s *Store) Get(id string) (Post, bool) {
	if s == nil {
		return Post{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return Post{}, false
	}
	return s.posts[i], true
}
