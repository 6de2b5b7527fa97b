package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Rasouli77/ellenovastyle/internal/dao"
	"github.com/Rasouli77/ellenovastyle/internal/model"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("blog post not found")

// BlogService serves the magazine section. Comments go through moderation:
// a new comment is stored unapproved and only approved ones are listed.
type BlogService struct {
	blogDao *dao.BlogDao
}

func NewBlogService(blogDao *dao.BlogDao) *BlogService {
	return &BlogService{blogDao: blogDao}
}

type BlogPage struct {
	Posts    []*model.BlogPost `json:"posts"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func (s *BlogService) ListPosts(ctx context.Context, page, pageSize int) (*BlogPage, error) {
	page, pageSize = normalizePage(page, pageSize)
	posts, total, err := s.blogDao.ListPosts(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &BlogPage{Posts: posts, Total: total, Page: page, PageSize: pageSize}, nil
}

// PostDetail is a post with its approved comments.
type PostDetail struct {
	Post     *model.BlogPost  `json:"post"`
	Comments []*model.Comment `json:"comments"`
}

func (s *BlogService) GetPost(ctx context.Context, slug string) (*PostDetail, error) {
	post, err := s.blogDao.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	comments, err := s.blogDao.ListApprovedComments(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments}, nil
}

// AddComment stores a comment awaiting moderation.
func (s *BlogService) AddComment(ctx context.Context, slug, name, phone, text string) error {
	post, err := s.blogDao.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	comment := &model.Comment{
		BlogID:      post.ID,
		Name:        name,
		PhoneNumber: phone,
		Comment:     text,
	}
	return s.blogDao.CreateComment(ctx, comment)
}

func (s *BlogService) Search(ctx context.Context, term string) ([]*model.BlogPost, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*model.BlogPost{}, nil
	}
	return s.blogDao.Search(ctx, term)
}
