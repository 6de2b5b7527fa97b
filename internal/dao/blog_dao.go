package dao

import (
	"context"

	"github.com/Rasouli77/ellenovastyle/internal/model"

	"gorm.io/gorm"
)

type BlogDao struct {
	db *gorm.DB
}

func NewBlogDao(db *gorm.DB) *BlogDao {
	return &BlogDao{db: db}
}

func (d *BlogDao) ListPosts(ctx context.Context, offset, limit int) ([]*model.BlogPost, int64, error) {
	var posts []*model.BlogPost
	var total int64

	if err := d.db.WithContext(ctx).Model(&model.BlogPost{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := d.db.WithContext(ctx).
		Order("date_created DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (d *BlogDao) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := d.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListApprovedComments returns only moderator-approved comments.
func (d *BlogDao) ListApprovedComments(ctx context.Context, blogID int64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := d.db.WithContext(ctx).
		Where("blog_id = ? AND approved = ?", blogID, true).
		Order("date_created DESC").
		Find(&comments).Error
	return comments, err
}

// CreateComment stores a comment awaiting moderation.
func (d *BlogDao) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.Approved = false
	return d.db.WithContext(ctx).Create(comment).Error
}

func (d *BlogDao) Search(ctx context.Context, term string) ([]*model.BlogPost, error) {
	var posts []*model.BlogPost
	like := "%" + term + "%"
	err := d.db.WithContext(ctx).
		Where("title LIKE ? OR content LIKE ?", like, like).
		Order("date_created DESC").
		Find(&posts).Error
	return posts, err
}
