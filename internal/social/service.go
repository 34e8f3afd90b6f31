package social

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ecoconnect-go/internal/async"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// Service is the backend collaborator for the social feed.
type Service interface {
	GetPosts(ctx context.Context, page int, filters Filters) ([]Post, error)
	CreatePost(ctx context.Context, input CreatePostInput) (*Post, error)
	Interact(ctx context.Context, interaction Interaction) error
	AddComment(ctx context.Context, input CommentInput) (*Comment, error)
	EcoTags(ctx context.Context) ([]EcoTag, error)
	SearchPosts(ctx context.Context, query string) ([]Post, error)
}

type mockService struct {
	mu           sync.Mutex
	posts        []Post
	pageSize     int
	latencyScale float64
	logger       *slog.Logger
}

// NewMockService builds the simulated feed backend, seeded with a handful of
// community posts.
func NewMockService(pageSize int, latencyScale float64, logger *slog.Logger) Service {
	return &mockService{
		posts:        seedPosts(),
		pageSize:     pageSize,
		latencyScale: latencyScale,
		logger:       logger,
	}
}

func (s *mockService) wait(ctx context.Context, base time.Duration) error {
	return async.Delay(ctx, time.Duration(float64(base)*s.latencyScale))
}

func (s *mockService) GetPosts(ctx context.Context, page int, filters Filters) ([]Post, error) {
	if err := s.wait(ctx, 800*time.Millisecond); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]Post, 0, len(s.posts))
	for _, post := range s.posts {
		if matchesFilters(post, filters) {
			filtered = append(filtered, post)
		}
	}

	start := (page - 1) * s.pageSize
	if start >= len(filtered) {
		return []Post{}, nil
	}
	end := start + s.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	result := make([]Post, 0, end-start)
	for _, post := range filtered[start:end] {
		result = append(result, clonePost(post))
	}
	return result, nil
}

func (s *mockService) CreatePost(ctx context.Context, input CreatePostInput) (*Post, error) {
	if err := s.wait(ctx, 1500*time.Millisecond); err != nil {
		return nil, err
	}

	now := time.Now()
	tags := make([]EcoTag, 0, len(input.EcoTags))
	for _, name := range input.EcoTags {
		tags = append(tags, EcoTag{
			ID:       uuid.New().String(),
			Name:     name,
			Category: CategoryOther,
			Color:    "#2E7D32",
		})
	}

	post := Post{
		ID:        uuid.New().String(),
		Author:    currentUser(),
		Content:   input.Content,
		Photos:    append([]string{}, input.Photos...),
		EcoTags:   tags,
		Location:  input.Location,
		Comments:  []Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.posts = append([]Post{post}, s.posts...)
	s.mu.Unlock()

	s.logger.Debug("mock post created", "post_id", post.ID)
	cloned := clonePost(post)
	return &cloned, nil
}

func (s *mockService) Interact(ctx context.Context, interaction Interaction) error {
	if err := s.wait(ctx, 300*time.Millisecond); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID != interaction.PostID {
			continue
		}
		switch interaction.Type {
		case InteractionLike:
			s.posts[i].Likes++
			s.posts[i].IsLiked = true
		case InteractionUnlike:
			s.posts[i].Likes--
			s.posts[i].IsLiked = false
		case InteractionShare:
			s.posts[i].Shares++
		}
		return nil
	}
	// Unknown post ids are ignored, like the remote would
	return nil
}

func (s *mockService) AddComment(ctx context.Context, input CommentInput) (*Comment, error) {
	if err := s.wait(ctx, 500*time.Millisecond); err != nil {
		return nil, err
	}

	comment := Comment{
		ID:        uuid.New().String(),
		Author:    currentUser(),
		Content:   input.Content,
		Replies:   []Reply{},
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID != input.PostID {
			continue
		}
		if input.ParentCommentID == "" {
			s.posts[i].Comments = append(s.posts[i].Comments, comment)
			return &comment, nil
		}
		for j := range s.posts[i].Comments {
			if s.posts[i].Comments[j].ID != input.ParentCommentID {
				continue
			}
			s.posts[i].Comments[j].Replies = append(s.posts[i].Comments[j].Replies, Reply{
				ID:        comment.ID,
				Author:    comment.Author,
				Content:   comment.Content,
				CreatedAt: comment.CreatedAt,
			})
			return &comment, nil
		}
		return nil, ErrCommentNotFound
	}
	return nil, ErrPostNotFound
}

func (s *mockService) EcoTags(ctx context.Context) ([]EcoTag, error) {
	if err := s.wait(ctx, 300*time.Millisecond); err != nil {
		return nil, err
	}
	return tagCatalogue(), nil
}

func (s *mockService) SearchPosts(ctx context.Context, query string) ([]Post, error) {
	if err := s.wait(ctx, 600*time.Millisecond); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(query)
	matches := make([]Post, 0)
	for _, post := range s.posts {
		if matchesQuery(post, query) {
			matches = append(matches, clonePost(post))
		}
	}
	return matches, nil
}

func matchesFilters(post Post, filters Filters) bool {
	if len(filters.EcoTags) > 0 {
		found := false
		for _, tag := range post.EcoTags {
			for _, want := range filters.EcoTags {
				if tag.Name == want {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	if filters.DateRange != nil {
		if post.CreatedAt.Before(filters.DateRange.Start) || post.CreatedAt.After(filters.DateRange.End) {
			return false
		}
	}
	// Geo filtering is not simulated
	return true
}

func matchesQuery(post Post, query string) bool {
	if strings.Contains(strings.ToLower(post.Content), query) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Author.Name), query) {
		return true
	}
	for _, tag := range post.EcoTags {
		if strings.Contains(strings.ToLower(tag.Name), query) {
			return true
		}
	}
	return false
}

func clonePost(post Post) Post {
	cloned := post
	cloned.Photos = append([]string{}, post.Photos...)
	cloned.EcoTags = append([]EcoTag{}, post.EcoTags...)
	cloned.Comments = make([]Comment, 0, len(post.Comments))
	for _, comment := range post.Comments {
		c := comment
		c.Replies = append([]Reply{}, comment.Replies...)
		cloned.Comments = append(cloned.Comments, c)
	}
	if post.Location != nil {
		loc := *post.Location
		cloned.Location = &loc
	}
	return cloned
}

func currentUser() Author {
	return Author{
		ID:         "current-user",
		Name:       "Demo User",
		Avatar:     "https://via.placeholder.com/40",
		IsVerified: true,
	}
}

func seedPosts() []Post {
	return []Post{
		{
			ID: "1",
			Author: Author{
				ID:         "user1",
				Name:       "Sarah Johnson",
				Avatar:     "https://via.placeholder.com/40",
				IsVerified: true,
			},
			Content: "Just finished organizing a beach cleanup with 20 volunteers! We collected 15 bags of trash and found some interesting recyclables. The ocean is looking cleaner already! 🌊",
			Photos:  []string{"https://via.placeholder.com/400x300"},
			EcoTags: []EcoTag{
				{ID: "1", Name: "Beach Cleanup", Category: CategoryCleanup, Color: "#2E7D32"},
				{ID: "2", Name: "Ocean Conservation", Category: CategoryConservation, Color: "#1976D2"},
				{ID: "3", Name: "Recycling", Category: CategoryRecycling, Color: "#FF9800"},
			},
			Likes: 24,
			Comments: []Comment{
				{
					ID:        "c1",
					Author:    Author{ID: "user2", Name: "Mike Chen", Avatar: "https://via.placeholder.com/32"},
					Content:   "Amazing work! Wish I could have joined you.",
					Likes:     3,
					Replies:   []Reply{},
					CreatedAt: time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC),
				},
			},
			Shares:    5,
			CreatedAt: time.Date(2024, time.March, 10, 14, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, time.March, 10, 14, 0, 0, 0, time.UTC),
		},
		{
			ID: "2",
			Author: Author{
				ID:     "user2",
				Name:   "Mike Chen",
				Avatar: "https://via.placeholder.com/40",
			},
			Content: "Converted my old plastic bottles into planters for my herb garden! Zero waste and fresh herbs for cooking. Win-win! 🌱",
			Photos:  []string{"https://via.placeholder.com/400x300"},
			EcoTags: []EcoTag{
				{ID: "4", Name: "Upcycling", Category: CategoryUpcycling, Color: "#4CAF50"},
				{ID: "5", Name: "Zero Waste", Category: CategoryConservation, Color: "#795548"},
				{ID: "6", Name: "Urban Gardening", Category: CategoryGardening, Color: "#8BC34A"},
			},
			Likes:     18,
			Comments:  []Comment{},
			Shares:    3,
			IsLiked:   true,
			CreatedAt: time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC),
		},
		{
			ID: "3",
			Author: Author{
				ID:         "user3",
				Name:       "Emma Rodriguez",
				Avatar:     "https://via.placeholder.com/40",
				IsVerified: true,
			},
			Content: "Switched to solar panels this month and my energy bill is already 80% lower! The environment and my wallet are both happy 😊",
			Photos:  []string{},
			EcoTags: []EcoTag{
				{ID: "7", Name: "Solar Energy", Category: CategoryEnergy, Color: "#FFC107"},
				{ID: "8", Name: "Renewable Energy", Category: CategoryEnergy, Color: "#FF9800"},
				{ID: "9", Name: "Sustainability", Category: CategoryConservation, Color: "#2E7D32"},
			},
			Likes: 32,
			Comments: []Comment{
				{
					ID:      "c2",
					Author:  Author{ID: "user1", Name: "Sarah Johnson", Avatar: "https://via.placeholder.com/32"},
					Content: "That's fantastic! How long was the installation process?",
					Likes:   1,
					Replies: []Reply{
						{
							ID:        "r1",
							Author:    Author{ID: "user3", Name: "Emma Rodriguez", Avatar: "https://via.placeholder.com/32"},
							Content:   "Just 2 days! The team was very professional.",
							Likes:     2,
							CreatedAt: time.Date(2024, time.March, 10, 9, 15, 0, 0, time.UTC),
						},
					},
					CreatedAt: time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC),
				},
			},
			Shares:    8,
			CreatedAt: time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC),
		},
	}
}

func tagCatalogue() []EcoTag {
	return []EcoTag{
		{ID: "1", Name: "Beach Cleanup", Category: CategoryCleanup, Color: "#2E7D32", Icon: "🏖️"},
		{ID: "2", Name: "Recycling", Category: CategoryRecycling, Color: "#4CAF50", Icon: "♻️"},
		{ID: "3", Name: "Upcycling", Category: CategoryUpcycling, Color: "#8BC34A", Icon: "🔄"},
		{ID: "4", Name: "Solar Energy", Category: CategoryEnergy, Color: "#FFC107", Icon: "☀️"},
		{ID: "5", Name: "Urban Gardening", Category: CategoryGardening, Color: "#8BC34A", Icon: "🌱"},
		{ID: "6", Name: "Zero Waste", Category: CategoryConservation, Color: "#795548", Icon: "🗑️"},
		{ID: "7", Name: "Composting", Category: CategoryRecycling, Color: "#6D4C41", Icon: "🍂"},
		{ID: "8", Name: "Water Conservation", Category: CategoryConservation, Color: "#03A9F4", Icon: "💧"},
		{ID: "9", Name: "Bike Commuting", Category: CategoryTransportation, Color: "#FF5722", Icon: "🚲"},
		{ID: "10", Name: "Tree Planting", Category: CategoryConservation, Color: "#4CAF50", Icon: "🌳"},
	}
}
