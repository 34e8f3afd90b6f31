package social

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"unicode/utf8"

	"ecoconnect-go/internal/async"
)

const (
	maxContentLength = 2000
	maxEcoTags       = 5
)

var (
	ErrContentRequired = errors.New("content is required")
	ErrContentTooLong  = errors.New("content exceeds 2000 characters")
	ErrTooManyTags     = errors.New("a post can carry at most 5 eco-tags")
)

// State is the feed slice's subtree. IsLoading covers first-page fetches,
// IsLoadingMore covers pagination.
type State struct {
	Posts         []Post
	IsLoading     bool
	IsLoadingMore bool
	HasMore       bool
	Error         string
	CurrentPage   int
	Filters       Filters
}

// Slice owns the paginated feed. Transitions are atomic with respect to
// Snapshot readers; concurrent operations of the same kind race and the last
// writer wins.
type Slice struct {
	mu       sync.RWMutex
	state    State
	svc      Service
	pageSize int
	logger   *slog.Logger
	notify   func()
}

func NewSlice(svc Service, pageSize int, logger *slog.Logger, notify func()) *Slice {
	return &Slice{
		state: State{
			Posts:       []Post{},
			HasMore:     true,
			CurrentPage: 1,
			Filters:     Filters{EcoTags: []string{}},
		},
		svc:      svc,
		pageSize: pageSize,
		logger:   logger,
		notify:   notify,
	}
}

// Snapshot returns a copy of the state safe to read outside the slice.
func (s *Slice) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.state
	state.Posts = make([]Post, 0, len(s.state.Posts))
	for _, post := range s.state.Posts {
		state.Posts = append(state.Posts, clonePost(post))
	}
	state.Filters.EcoTags = append([]string{}, s.state.Filters.EcoTags...)
	return state
}

// FetchArgs selects a page; Reset forces first-page replace semantics
// regardless of the page number.
type FetchArgs struct {
	Page  int
	Reset bool
}

// FetchPosts loads a feed page with the slice's active filters. Page 1 or a
// reset replaces the list, any other page appends. HasMore is recomputed as
// "the page came back full", so an exactly-full final page reads as more
// until the next fetch returns an empty one.
func (s *Slice) FetchPosts(ctx context.Context, args FetchArgs) error {
	if args.Page <= 0 {
		args.Page = 1
	}

	return async.Run(ctx, async.Lifecycle[FetchArgs, []Post]{
		Slice: "social",
		Name:  "fetch_posts",
		OnStart: func(args FetchArgs) {
			s.mu.Lock()
			if args.Page == 1 || args.Reset {
				s.state.IsLoading = true
			} else {
				s.state.IsLoadingMore = true
			}
			s.state.Error = ""
			s.mu.Unlock()
			s.changed()
		},
		OnSuccess: func(posts []Post, args FetchArgs) {
			s.mu.Lock()
			s.state.IsLoading = false
			s.state.IsLoadingMore = false
			if args.Page == 1 || args.Reset {
				s.state.Posts = posts
			} else {
				s.state.Posts = append(s.state.Posts, posts...)
			}
			s.state.CurrentPage = args.Page
			s.state.HasMore = len(posts) == s.pageSize
			s.state.Error = ""
			s.mu.Unlock()
			s.changed()
		},
		OnFailure: func(message string, _ FetchArgs) {
			s.mu.Lock()
			s.state.IsLoading = false
			s.state.IsLoadingMore = false
			s.state.Error = message
			s.mu.Unlock()
			s.changed()
		},
	}, args, func(ctx context.Context, args FetchArgs) ([]Post, error) {
		s.mu.RLock()
		filters := s.state.Filters
		s.mu.RUnlock()
		return s.svc.GetPosts(ctx, args.Page, filters)
	})
}

// CreatePost publishes a post and prepends it to the feed, whatever the
// active filters are.
func (s *Slice) CreatePost(ctx context.Context, input CreatePostInput) error {
	if err := validatePost(input); err != nil {
		return err
	}

	return async.Run(ctx, async.Lifecycle[CreatePostInput, *Post]{
		Slice: "social",
		Name:  "create_post",
		OnStart: func(CreatePostInput) {
			s.mu.Lock()
			s.state.Error = ""
			s.mu.Unlock()
		},
		OnSuccess: func(post *Post, _ CreatePostInput) {
			s.mu.Lock()
			s.state.Posts = append([]Post{*post}, s.state.Posts...)
			s.state.Error = ""
			s.mu.Unlock()
			s.changed()
		},
		OnFailure: func(message string, _ CreatePostInput) {
			s.mu.Lock()
			s.state.Error = message
			s.mu.Unlock()
			s.changed()
		},
	}, input, func(ctx context.Context, input CreatePostInput) (*Post, error) {
		return s.svc.CreatePost(ctx, input)
	})
}

// LikePost applies a like or unlike to a post. The UI is expected to offer
// only the currently valid action based on IsLiked.
func (s *Slice) LikePost(ctx context.Context, interaction Interaction) error {
	return async.Run(ctx, async.Lifecycle[Interaction, Interaction]{
		Slice: "social",
		Name:  "like_post",
		OnStart: func(Interaction) {
			s.mu.Lock()
			s.state.Error = ""
			s.mu.Unlock()
		},
		OnSuccess: func(result Interaction, _ Interaction) {
			s.mu.Lock()
			for i := range s.state.Posts {
				if s.state.Posts[i].ID != result.PostID {
					continue
				}
				switch result.Type {
				case InteractionLike:
					s.state.Posts[i].Likes++
					s.state.Posts[i].IsLiked = true
				case InteractionUnlike:
					s.state.Posts[i].Likes--
					s.state.Posts[i].IsLiked = false
				}
				break
			}
			s.mu.Unlock()
			s.changed()
		},
		OnFailure: func(message string, _ Interaction) {
			s.mu.Lock()
			s.state.Error = message
			s.mu.Unlock()
			s.changed()
		},
	}, interaction, func(ctx context.Context, interaction Interaction) (Interaction, error) {
		if err := s.svc.Interact(ctx, interaction); err != nil {
			return Interaction{}, err
		}
		return interaction, nil
	})
}

// AddComment appends a top-level comment, or a reply under ParentCommentID.
// Replies attach one level deep only.
func (s *Slice) AddComment(ctx context.Context, input CommentInput) error {
	if input.Content == "" {
		return ErrContentRequired
	}

	return async.Run(ctx, async.Lifecycle[CommentInput, *Comment]{
		Slice: "social",
		Name:  "add_comment",
		OnStart: func(CommentInput) {
			s.mu.Lock()
			s.state.Error = ""
			s.mu.Unlock()
		},
		OnSuccess: func(comment *Comment, input CommentInput) {
			s.mu.Lock()
			s.placeComment(*comment, input)
			s.mu.Unlock()
			s.changed()
		},
		OnFailure: func(message string, _ CommentInput) {
			s.mu.Lock()
			s.state.Error = message
			s.mu.Unlock()
			s.changed()
		},
	}, input, func(ctx context.Context, input CommentInput) (*Comment, error) {
		return s.svc.AddComment(ctx, input)
	})
}

// SharePost bumps the share counter; likes are untouched.
func (s *Slice) SharePost(ctx context.Context, postID string) error {
	return async.Run(ctx, async.Lifecycle[string, string]{
		Slice: "social",
		Name:  "share_post",
		OnStart: func(string) {
			s.mu.Lock()
			s.state.Error = ""
			s.mu.Unlock()
		},
		OnSuccess: func(result string, _ string) {
			s.mu.Lock()
			for i := range s.state.Posts {
				if s.state.Posts[i].ID == result {
					s.state.Posts[i].Shares++
					break
				}
			}
			s.mu.Unlock()
			s.changed()
		},
		OnFailure: func(message string, _ string) {
			s.mu.Lock()
			s.state.Error = message
			s.mu.Unlock()
			s.changed()
		},
	}, postID, func(ctx context.Context, postID string) (string, error) {
		if err := s.svc.Interact(ctx, Interaction{PostID: postID, Type: InteractionShare}); err != nil {
			return "", err
		}
		return postID, nil
	})
}

// SetFilters merges the given filters into the active set. Callers usually
// follow with a reset fetch.
func (s *Slice) SetFilters(filters Filters) {
	s.mu.Lock()
	if filters.EcoTags != nil {
		s.state.Filters.EcoTags = filters.EcoTags
	}
	if filters.DateRange != nil {
		s.state.Filters.DateRange = filters.DateRange
	}
	if filters.Location != nil {
		s.state.Filters.Location = filters.Location
	}
	s.mu.Unlock()
	s.changed()
}

// ResetFeed clears the list and rewinds pagination.
func (s *Slice) ResetFeed() {
	s.mu.Lock()
	s.state.Posts = []Post{}
	s.state.CurrentPage = 1
	s.state.HasMore = true
	s.mu.Unlock()
	s.changed()
}

// UpdatePostLocally applies an in-place mutation to one held post without a
// network round trip.
func (s *Slice) UpdatePostLocally(postID string, apply func(*Post)) {
	s.mu.Lock()
	for i := range s.state.Posts {
		if s.state.Posts[i].ID == postID {
			apply(&s.state.Posts[i])
			break
		}
	}
	s.mu.Unlock()
	s.changed()
}

// ClearError drops the last operation error.
func (s *Slice) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.changed()
}

func (s *Slice) placeComment(comment Comment, input CommentInput) {
	for i := range s.state.Posts {
		if s.state.Posts[i].ID != input.PostID {
			continue
		}
		if input.ParentCommentID == "" {
			s.state.Posts[i].Comments = append(s.state.Posts[i].Comments, comment)
			return
		}
		for j := range s.state.Posts[i].Comments {
			if s.state.Posts[i].Comments[j].ID != input.ParentCommentID {
				continue
			}
			s.state.Posts[i].Comments[j].Replies = append(s.state.Posts[i].Comments[j].Replies, Reply{
				ID:        comment.ID,
				Author:    comment.Author,
				Content:   comment.Content,
				CreatedAt: comment.CreatedAt,
			})
			return
		}
		return
	}
}

func validatePost(input CreatePostInput) error {
	if input.Content == "" {
		return ErrContentRequired
	}
	if utf8.RuneCountInString(input.Content) > maxContentLength {
		return ErrContentTooLong
	}
	if len(input.EcoTags) > maxEcoTags {
		return ErrTooManyTags
	}
	return nil
}

func (s *Slice) changed() {
	if s.notify != nil {
		s.notify()
	}
}
