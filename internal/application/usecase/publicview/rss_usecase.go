package publicview

import (
	"context"
	"fmt"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/haintran/portfolio-api/pkg/logger"
)

type RSSUseCase struct {
	publicUC      *PublicUseCase
	publicBaseURL string
	logger        logger.Logger
}

func NewRSSUseCase(publicUC *PublicUseCase, publicBaseURL string, log logger.Logger) *RSSUseCase {
	return &RSSUseCase{
		publicUC:      publicUC,
		publicBaseURL: publicBaseURL,
		logger:        log,
	}
}

func (uc *RSSUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	p, err := uc.publicUC.ExecuteGetPublicProfile(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := uc.publicUC.ExecuteListPublishedPosts(ctx)
	if err != nil {
		return nil, err
	}

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s - Blog", p.Name),
		Link:        &feeds.Link{Href: uc.publicBaseURL},
		Description: p.Bio,
		Author:      &feeds.Author{Name: p.Name, Email: p.Contact.Email},
	}

	for _, post := range posts {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       post.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/blog/%s", uc.publicBaseURL, post.Slug)},
			Description: post.Excerpt,
			Content:     post.Content,
			Created:     post.Date,
		})
	}

	uc.logger.Info("RSS feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
