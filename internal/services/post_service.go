package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/repositories"
	"github.com/gourdmobile/backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostService owns the Post aggregate: the post itself, its comments and their replies. Every
// comment or reply mutation loads the whole post, changes it in memory and writes it back.
type PostService struct {
	posts      repositories.PostRepository
	users      repositories.UserRepository
	categories repositories.CategoryRepository
	sanitizer  *Sanitizer
	log        *logger.Logger
	now        func() time.Time
}

func NewPostService(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	categories repositories.CategoryRepository,
	sanitizer *Sanitizer,
	log *logger.Logger,
) *PostService {
	return &PostService{
		posts:      posts,
		users:      users,
		categories: categories,
		sanitizer:  sanitizer,
		log:        log.With("service", "PostService"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *PostService) CreatePost(ctx context.Context, actor models.AuthContext, req *models.CreatePostRequest) (*models.Post, error) {
	title := s.sanitizer.Plain(req.Title)
	content := s.sanitizer.Rich(req.Content)
	if title == "" || content == "" || req.Category == 0 {
		return nil, fmt.Errorf("%w: title, content and category are required", ErrBadRequest)
	}

	post := &models.Post{
		Title:      title,
		Content:    content,
		Images:     req.Images,
		UserID:     actor.UserID,
		CategoryID: req.Category,
		Likes:      0,
		Comments:   []models.Comment{},
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.log.Info("post created", "post_id", post.ID.Hex(), "user_id", actor.UserID)
	return post, nil
}

// ListPosts returns posts newest first with owners, categories and comment authors populated.
func (s *PostService) ListPosts(ctx context.Context, skip, limit int64) ([]models.PostView, error) {
	posts, err := s.posts.GetAllPosts(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.populate(posts)
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*models.PostView, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	views, err := s.populate([]models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// UpdatePost changes the root fields present in req. Only the owner may update a post.
func (s *PostService) UpdatePost(ctx context.Context, postID string, actor models.AuthContext, req *models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actor.UserID {
		return nil, fmt.Errorf("%w: only the owner may update this post", ErrForbidden)
	}

	if req.Title != "" {
		post.Title = s.sanitizer.Plain(req.Title)
	}
	if req.Content != "" {
		post.Content = s.sanitizer.Rich(req.Content)
	}
	if req.Images != nil {
		post.Images = req.Images
	}
	if req.Category != 0 {
		post.CategoryID = req.Category
	}

	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, s.translate(err)
	}
	return post, nil
}

// DeletePost removes a post. Its owner or an administrator may do so.
func (s *PostService) DeletePost(ctx context.Context, postID string, actor models.AuthContext) error {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}
	if !actor.IsSelfOrAdmin(post.UserID) {
		return fmt.Errorf("%w: only the owner or an administrator may delete this post", ErrForbidden)
	}
	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return s.translate(err)
	}
	s.log.Info("post deleted", "post_id", postID, "user_id", actor.UserID, "is_admin", actor.IsAdmin)
	return nil
}

func (s *PostService) LikePost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.posts.IncrementLikesCount(ctx, postID)
	if err != nil {
		return nil, s.translate(err)
	}
	return post, nil
}

// AddComment appends a comment authored by actor to the end of the post's comment list.
func (s *PostService) AddComment(ctx context.Context, postID string, actor models.AuthContext, content string) (*models.Comment, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, fmt.Errorf("%w: content is required", ErrBadRequest)
	}
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Comments = append(post.Comments, models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    actor.UserID,
		Content:   text,
		Replies:   []models.Reply{},
		CreatedAt: s.now(),
	})
	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, s.translate(err)
	}
	return &post.Comments[len(post.Comments)-1], nil
}

// EditComment replaces a comment's text. Only its author may edit it; an administrator who is not
// the author is refused like anyone else.
func (s *PostService) EditComment(ctx context.Context, postID, commentID string, actor models.AuthContext, content string) (*models.Comment, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, fmt.Errorf("%w: content is required", ErrBadRequest)
	}
	post, idx, err := s.loadComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}

	comment := &post.Comments[idx]
	if !comment.CanEdit(actor) {
		return nil, fmt.Errorf("%w: you can only edit your own comments", ErrForbidden)
	}
	comment.Content = text

	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, s.translate(err)
	}
	return comment, nil
}

// DeleteComment removes a comment together with its replies. Its author or an administrator may.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID string, actor models.AuthContext) error {
	post, idx, err := s.loadComment(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if !post.Comments[idx].CanDelete(actor) {
		return fmt.Errorf("%w: you can only delete your own comments", ErrForbidden)
	}
	post.RemoveComment(idx)

	if err := s.posts.SavePost(ctx, post); err != nil {
		return s.translate(err)
	}
	return nil
}

// AddReply appends a reply authored by actor to the end of the comment's reply list.
func (s *PostService) AddReply(ctx context.Context, postID, commentID string, actor models.AuthContext, content string) (*models.Reply, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, fmt.Errorf("%w: content is required", ErrBadRequest)
	}
	post, idx, err := s.loadComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}

	comment := &post.Comments[idx]
	comment.Replies = append(comment.Replies, models.Reply{
		ID:        primitive.NewObjectID(),
		UserID:    actor.UserID,
		Content:   text,
		CreatedAt: s.now(),
	})
	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, s.translate(err)
	}
	return &comment.Replies[len(comment.Replies)-1], nil
}

func (s *PostService) loadPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, s.translate(err)
	}
	return post, nil
}

func (s *PostService) loadComment(ctx context.Context, postID, commentID string) (*models.Post, int, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, -1, err
	}
	objID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, -1, fmt.Errorf("%w: comment not found", ErrNotFound)
	}
	idx := post.FindComment(objID)
	if idx < 0 {
		return nil, -1, fmt.Errorf("%w: comment not found", ErrNotFound)
	}
	return post, idx, nil
}

// translate maps repository misses onto ErrNotFound. A malformed id cannot name a stored post,
// so it is reported the same way.
func (s *PostService) translate(err error) error {
	if errors.Is(err, repositories.ErrPostNotFound) || errors.Is(err, repositories.ErrInvalidID) {
		return fmt.Errorf("%w: post not found", ErrNotFound)
	}
	return err
}

func (s *PostService) populate(posts []models.Post) ([]models.PostView, error) {
	var userIDs, categoryIDs []uint
	for i := range posts {
		userIDs = append(userIDs, posts[i].UserIDs()...)
		categoryIDs = append(categoryIDs, posts[i].CategoryID)
	}

	users, err := userDirectory(s.users, userIDs)
	if err != nil {
		return nil, fmt.Errorf("populate users: %w", err)
	}
	found, err := s.categories.GetCategoriesByIDs(uniqueIDs(categoryIDs))
	if err != nil {
		return nil, fmt.Errorf("populate categories: %w", err)
	}
	categories := make(map[uint]*models.Descriptor, len(found))
	for i := range found {
		categories[found[i].ID] = found[i].ToDescriptor()
	}

	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		images := p.Images
		if images == nil {
			images = []string{}
		}
		views[i] = models.PostView{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Images:    images,
			User:      users[p.UserID],
			Category:  categories[p.CategoryID],
			Likes:     p.Likes,
			Comments:  make([]models.CommentView, len(p.Comments)),
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		for j, c := range p.Comments {
			cv := models.CommentView{
				ID:        c.ID,
				User:      users[c.UserID],
				Content:   c.Content,
				Replies:   make([]models.ReplyView, len(c.Replies)),
				CreatedAt: c.CreatedAt,
			}
			for k, r := range c.Replies {
				cv.Replies[k] = models.ReplyView{
					ID:        r.ID,
					User:      users[r.UserID],
					Content:   r.Content,
					CreatedAt: r.CreatedAt,
				}
			}
			views[i].Comments[j] = cv
		}
	}
	return views, nil
}
