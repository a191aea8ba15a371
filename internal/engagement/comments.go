package engagement

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mohammad-safakhou/technote/internal/kv"
	"github.com/mohammad-safakhou/technote/internal/render"
)

const (
	// DefaultCommentAuthor is shown for comments posted without a name.
	DefaultCommentAuthor = "あなた"
	// MaxCommentLength caps a comment body in runes.
	MaxCommentLength = 2000
)

var (
	ErrEmptyComment    = errors.New("comment is empty")
	ErrCommentTooLong  = errors.New("comment is too long")
	ErrCommentNotFound = errors.New("comment not found")
)

// Comment is one reader comment on an article.
type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"article_id"`
	Author    string    `json:"author"`
	Avatar    string    `json:"avatar"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}

// Comments stores comments for all articles under one key, keyed by article id.
type Comments struct {
	Store kv.Store
	Now   func() time.Time
}

// NewComments returns a comment book over s.
func NewComments(s kv.Store) *Comments {
	return &Comments{Store: s, Now: time.Now}
}

func (c *Comments) load(ctx context.Context) (map[string][]Comment, error) {
	all := map[string][]Comment{}
	if _, err := kv.GetJSON(ctx, c.Store, kv.KeyArticleComments, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = map[string][]Comment{}
	}
	return all, nil
}

// Add stores a new comment. Markup is stripped from author and text.
func (c *Comments) Add(ctx context.Context, articleID, author, text string) (Comment, error) {
	content := render.PlainText(text)
	if content == "" {
		return Comment{}, ErrEmptyComment
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	author = render.PlainText(author)
	if author == "" {
		author = DefaultCommentAuthor
	}
	all, err := c.load(ctx)
	if err != nil {
		return Comment{}, err
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	cm := Comment{
		ID:        uuid.NewString(),
		ArticleID: articleID,
		Author:    author,
		Avatar:    avatar(author),
		Content:   content,
		CreatedAt: now().UTC(),
	}
	all[articleID] = append([]Comment{cm}, all[articleID]...)
	if err := kv.SetJSON(ctx, c.Store, kv.KeyArticleComments, all); err != nil {
		return Comment{}, err
	}
	return cm, nil
}

// List returns the comments on an article, newest first.
func (c *Comments) List(ctx context.Context, articleID string) ([]Comment, error) {
	all, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := append([]Comment{}, all[articleID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Like toggles the reader's like on a comment and returns the updated comment.
func (c *Comments) Like(ctx context.Context, articleID, commentID string) (Comment, error) {
	all, err := c.load(ctx)
	if err != nil {
		return Comment{}, err
	}
	list := all[articleID]
	for i := range list {
		if list[i].ID != commentID {
			continue
		}
		if list[i].Liked {
			list[i].Likes--
		} else {
			list[i].Likes++
		}
		list[i].Liked = !list[i].Liked
		if list[i].Likes < 0 {
			list[i].Likes = 0
		}
		if err := kv.SetJSON(ctx, c.Store, kv.KeyArticleComments, all); err != nil {
			return Comment{}, err
		}
		return list[i], nil
	}
	return Comment{}, fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
}

func avatar(author string) string {
	if author == DefaultCommentAuthor {
		return "YOU"
	}
	r, _ := utf8.DecodeRuneInString(author)
	return strings.ToUpper(string(r))
}
