package social

import "time"

// TagCategory is the closed set of eco-tag categories.
type TagCategory string

const (
	CategoryCleanup        TagCategory = "cleanup"
	CategoryRecycling      TagCategory = "recycling"
	CategoryUpcycling      TagCategory = "upcycling"
	CategoryEnergy         TagCategory = "energy"
	CategoryTransportation TagCategory = "transportation"
	CategoryGardening      TagCategory = "gardening"
	CategoryConservation   TagCategory = "conservation"
	CategoryEducation      TagCategory = "education"
	CategoryPolicy         TagCategory = "policy"
	CategoryOther          TagCategory = "other"
)

// EcoTag is a categorized label attached to a post.
type EcoTag struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Category TagCategory `json:"category"`
	Color    string      `json:"color"`
	Icon     string      `json:"icon,omitempty"`
}

// Author is a denormalized snapshot of the posting user, not a live
// reference.
type Author struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	IsVerified bool   `json:"is_verified"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Reply is a second-level comment. Replies cannot themselves have replies.
type Reply struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	IsLiked   bool      `json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is owned by its parent post; appended, never reordered or deleted.
type Comment struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	IsLiked   bool      `json:"is_liked"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is a feed entry. IsLiked is the viewer's own like state, distinct
// from the aggregate Likes counter.
type Post struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Photos    []string  `json:"photos"`
	EcoTags   []EcoTag  `json:"eco_tags"`
	Location  *Location `json:"location,omitempty"`
	Likes     int       `json:"likes"`
	Comments  []Comment `json:"comments"`
	Shares    int       `json:"shares"`
	IsLiked   bool      `json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type GeoFilter struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius_km"`
}

// Filters narrows the feed by tag names, date range or geo radius.
type Filters struct {
	EcoTags   []string   `json:"eco_tags"`
	DateRange *DateRange `json:"date_range,omitempty"`
	Location  *GeoFilter `json:"location,omitempty"`
}

type CreatePostInput struct {
	Content  string    `json:"content"`
	Photos   []string  `json:"photos,omitempty"`
	EcoTags  []string  `json:"eco_tags"`
	Location *Location `json:"location,omitempty"`
}

// InteractionType is what a viewer can do to a post besides commenting.
type InteractionType string

const (
	InteractionLike   InteractionType = "like"
	InteractionUnlike InteractionType = "unlike"
	InteractionShare  InteractionType = "share"
)

type Interaction struct {
	PostID string          `json:"post_id"`
	Type   InteractionType `json:"type"`
}

type CommentInput struct {
	PostID          string `json:"post_id"`
	Content         string `json:"content"`
	ParentCommentID string `json:"parent_comment_id,omitempty"`
}
