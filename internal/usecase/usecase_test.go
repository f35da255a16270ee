package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/linksnip/linksnip/internal/entity"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	usecaseMock "github.com/linksnip/linksnip/mocks/usecase"
)

type LinkUseCaseTestSuite struct {
	suite.Suite
	errUnknown error
	repoMock   *usecaseMock.MockLinkRepository
	cacheMock  *usecaseMock.MockLinkCache
	statsMock  *usecaseMock.MockAccessRecorder
	uc         *LinkUseCase
}

func (suite *LinkUseCaseTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
}

func (suite *LinkUseCaseTestSuite) SetupSubTest() {
	suite.repoMock = usecaseMock.NewMockLinkRepository(suite.T())
	suite.cacheMock = usecaseMock.NewMockLinkCache(suite.T())
	suite.statsMock = usecaseMock.NewMockAccessRecorder(suite.T())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.uc = NewLinkUseCase(suite.repoMock, suite.cacheMock, suite.statsMock, logger, 7, 10)
}

func (suite *LinkUseCaseTestSuite) TearDownSubTest() {
	suite.repoMock.AssertExpectations(suite.T())
	suite.cacheMock.AssertExpectations(suite.T())
	suite.statsMock.AssertExpectations(suite.T())
}

func (suite *LinkUseCaseTestSuite) TestResolve() {
	suite.Run("cache hit", func() {
		suite.cacheMock.
			On("Get", mock.Anything, "abc123").
			Once().
			Return(&entity.CacheEntry{OriginalURL: "https://example.com/page"}, nil)
		suite.statsMock.
			On("Record", "abc123", mock.Anything).
			Once().
			Return(true)

		url, err := suite.uc.Resolve(context.Background(), "abc123")

		suite.NoError(err)
		suite.Equal("https://example.com/page", url)
	})

	suite.Run("cache hit with expired entry", func() {
		expiresAt := time.Now().Add(-time.Hour)

		suite.cacheMock.
			On("Get", mock.Anything, "abc123").
			Once().
			Return(&entity.CacheEntry{OriginalURL: "https://example.com", ExpiresAt: &expiresAt}, nil)
		suite.cacheMock.
			On("Invalidate", mock.Anything, "abc123").
			Maybe().
			Return(nil)

		url, err := suite.uc.Resolve(context.Background(), "abc123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrLinkExpired)
		suite.Empty(url)
	})

	suite.Run("cache miss, link not found", func() {
		suite.cacheMock.
			On("Get", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrCacheMiss)
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrLinkNotFound)

		url, err := suite.uc.Resolve(context.Background(), "abc123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrLinkNotFound)
		suite.Empty(url)
	})

	suite.Run("cache miss, link expired in store", func() {
		expiresAt := time.Now().Add(-time.Hour)

		suite.cacheMock.
			On("Get", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrCacheMiss)
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{ShortCode: "abc123", OriginalURL: "https://example.com", ExpiresAt: &expiresAt}, nil)
		suite.cacheMock.
			On("Invalidate", mock.Anything, "abc123").
			Maybe().
			Return(nil)

		url, err := suite.uc.Resolve(context.Background(), "abc123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrLinkExpired)
		suite.Empty(url)
	})

	suite.Run("cache miss, store fallback repopulates cache", func() {
		suite.cacheMock.
			On("Get", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrCacheMiss)
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{ShortCode: "abc123", OriginalURL: "https://example.com/page"}, nil)
		suite.cacheMock.
			On("Put", mock.Anything, "abc123", "https://example.com/page", (*time.Time)(nil)).
			Once().
			Return(nil)
		suite.statsMock.
			On("Record", "abc123", mock.Anything).
			Once().
			Return(true)

		url, err := suite.uc.Resolve(context.Background(), "abc123")

		suite.NoError(err)
		suite.Equal("https://example.com/page", url)
	})

	suite.Run("cache backend down, store fallback skips repopulation", func() {
		suite.cacheMock.
			On("Get", mock.Anything, "abc123").
			Once().
			Return(nil, suite.errUnknown)
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{ShortCode: "abc123", OriginalURL: "https://example.com/page"}, nil)
		suite.statsMock.
			On("Record", "abc123", mock.Anything).
			Once().
			Return(true)

		url, err := suite.uc.Resolve(context.Background(), "abc123")

		suite.NoError(err)
		suite.Equal("https://example.com/page", url)
		suite.cacheMock.AssertNotCalled(suite.T(), "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	suite.Run("store down surfaces storage error, not a not-found", func() {
		suite.cacheMock.
			On("Get", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrCacheMiss)
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrStorageUnavailable)

		url, err := suite.uc.Resolve(context.Background(), "abc123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrStorageUnavailable)
		suite.NotErrorIs(err, entity.ErrLinkNotFound)
		suite.Empty(url)
	})

	suite.Run("cache population failure does not fail resolution", func() {
		suite.cacheMock.
			On("Get", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrCacheMiss)
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{ShortCode: "abc123", OriginalURL: "https://example.com/page"}, nil)
		suite.cacheMock.
			On("Put", mock.Anything, "abc123", "https://example.com/page", (*time.Time)(nil)).
			Once().
			Return(suite.errUnknown)
		suite.statsMock.
			On("Record", "abc123", mock.Anything).
			Once().
			Return(true)

		url, err := suite.uc.Resolve(context.Background(), "abc123")

		suite.NoError(err)
		suite.Equal("https://example.com/page", url)
	})
}

func (suite *LinkUseCaseTestSuite) TestShorten() {
	params := ShortenParams{OriginalURL: "https://example.com"}

	suite.Run("maximum retries error", func() {
		suite.repoMock.
			On("Save", mock.Anything, mock.Anything).
			Times(10).
			Return(nil, entity.ErrShortCodeExists)

		link, err := suite.uc.Shorten(context.Background(), params)

		suite.Error(err)
		suite.ErrorIs(err, ErrMaxRetriesExceeded)
		suite.Nil(link)
	})

	suite.Run("storage error", func() {
		suite.repoMock.
			On("Save", mock.Anything, mock.Anything).
			Once().
			Return(nil, suite.errUnknown)

		link, err := suite.uc.Shorten(context.Background(), params)

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(link)
	})

	suite.Run("collision retries with a new draw", func() {
		suite.repoMock.
			On("Save", mock.Anything, mock.Anything).
			Once().
			Return(nil, entity.ErrShortCodeExists)
		suite.repoMock.
			On("Save", mock.Anything, mock.Anything).
			Once().
			Return(&entity.Link{ShortCode: "abc1234", OriginalURL: "https://example.com"}, nil)
		suite.cacheMock.
			On("Put", mock.Anything, "abc1234", "https://example.com", (*time.Time)(nil)).
			Once().
			Return(nil)

		link, err := suite.uc.Shorten(context.Background(), params)

		suite.NoError(err)
		suite.NotNil(link)
		suite.Equal("abc1234", link.ShortCode)
	})

	suite.Run("success", func() {
		suite.repoMock.
			On("Save", mock.Anything, mock.MatchedBy(func(link *entity.Link) bool {
				return len(link.ShortCode) == 7 && !link.CustomAlias
			})).
			Once().
			Return(&entity.Link{ShortCode: "abc1234", OriginalURL: "https://example.com"}, nil)
		suite.cacheMock.
			On("Put", mock.Anything, "abc1234", "https://example.com", (*time.Time)(nil)).
			Once().
			Return(nil)

		link, err := suite.uc.Shorten(context.Background(), params)

		suite.NoError(err)
		suite.NotNil(link)
		suite.Equal("https://example.com", link.OriginalURL)
	})
}

func (suite *LinkUseCaseTestSuite) TestShortenWithAlias() {
	suite.Run("reserved alias", func() {
		link, err := suite.uc.Shorten(context.Background(), ShortenParams{
			OriginalURL: "https://example.com",
			CustomAlias: "api",
		})

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrAliasInvalid)
		suite.Nil(link)
	})

	suite.Run("alias too short", func() {
		link, err := suite.uc.Shorten(context.Background(), ShortenParams{
			OriginalURL: "https://example.com",
			CustomAlias: "ab",
		})

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrAliasInvalid)
		suite.Nil(link)
	})

	suite.Run("alias with invalid characters", func() {
		link, err := suite.uc.Shorten(context.Background(), ShortenParams{
			OriginalURL: "https://example.com",
			CustomAlias: "my alias!",
		})

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrAliasInvalid)
		suite.Nil(link)
	})

	suite.Run("alias taken", func() {
		suite.repoMock.
			On("Save", mock.Anything, mock.Anything).
			Once().
			Return(nil, entity.ErrShortCodeExists)

		link, err := suite.uc.Shorten(context.Background(), ShortenParams{
			OriginalURL: "https://example.com",
			CustomAlias: "my-links",
		})

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrShortCodeExists)
		suite.Nil(link)
	})

	suite.Run("success", func() {
		suite.repoMock.
			On("Save", mock.Anything, mock.MatchedBy(func(link *entity.Link) bool {
				return link.ShortCode == "my-links" && link.CustomAlias
			})).
			Once().
			Return(&entity.Link{ShortCode: "my-links", OriginalURL: "https://example.com", CustomAlias: true}, nil)
		suite.cacheMock.
			On("Put", mock.Anything, "my-links", "https://example.com", (*time.Time)(nil)).
			Once().
			Return(nil)

		link, err := suite.uc.Shorten(context.Background(), ShortenParams{
			OriginalURL: "https://example.com",
			CustomAlias: "my-links",
		})

		suite.NoError(err)
		suite.NotNil(link)
		suite.Equal("my-links", link.ShortCode)
	})
}

func (suite *LinkUseCaseTestSuite) TestModify() {
	suite.Run("link not found", func() {
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrLinkNotFound)

		link, err := suite.uc.Modify(context.Background(), "abc123", "https://new-example.com", nil, "user-1")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrLinkNotFound)
		suite.Nil(link)
	})

	suite.Run("permission denied", func() {
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{ShortCode: "abc123", OwnerID: "user-1"}, nil)

		link, err := suite.uc.Modify(context.Background(), "abc123", "https://new-example.com", nil, "user-2")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrPermissionDenied)
		suite.Nil(link)
	})

	suite.Run("anonymous principal may not modify an anonymous link", func() {
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{ShortCode: "abc123"}, nil)

		link, err := suite.uc.Modify(context.Background(), "abc123", "https://new-example.com", nil, "")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrPermissionDenied)
		suite.Nil(link)
		suite.repoMock.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	suite.Run("cache invalidated before success", func() {
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{ShortCode: "abc123", OwnerID: "user-1"}, nil)
		suite.repoMock.
			On("Update", mock.Anything, "abc123", "https://new-example.com", (*time.Time)(nil)).
			Once().
			Return(&entity.Link{ShortCode: "abc123", OriginalURL: "https://new-example.com", OwnerID: "user-1"}, nil)
		suite.cacheMock.
			On("Invalidate", mock.Anything, "abc123").
			Once().
			Return(nil)
		suite.cacheMock.
			On("Put", mock.Anything, "abc123", "https://new-example.com", (*time.Time)(nil)).
			Once().
			Return(nil)

		link, err := suite.uc.Modify(context.Background(), "abc123", "https://new-example.com", nil, "user-1")

		suite.NoError(err)
		suite.NotNil(link)
		suite.Equal("https://new-example.com", link.OriginalURL)
	})

	suite.Run("invalidation failure does not fail the update", func() {
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{ShortCode: "abc123"}, nil)
		suite.repoMock.
			On("Update", mock.Anything, "abc123", "https://new-example.com", (*time.Time)(nil)).
			Once().
			Return(&entity.Link{ShortCode: "abc123", OriginalURL: "https://new-example.com"}, nil)
		suite.cacheMock.
			On("Invalidate", mock.Anything, "abc123").
			Once().
			Return(suite.errUnknown)
		suite.cacheMock.
			On("Put", mock.Anything, "abc123", "https://new-example.com", (*time.Time)(nil)).
			Once().
			Return(nil)

		link, err := suite.uc.Modify(context.Background(), "abc123", "https://new-example.com", nil, "user-1")

		suite.NoError(err)
		suite.NotNil(link)
	})
}

func (suite *LinkUseCaseTestSuite) TestDeactivate() {
	suite.Run("permission denied", func() {
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{ShortCode: "abc123", OwnerID: "user-1"}, nil)

		err := suite.uc.Deactivate(context.Background(), "abc123", "user-2")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrPermissionDenied)
	})

	suite.Run("anonymous principal may not deactivate an anonymous link", func() {
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{ShortCode: "abc123"}, nil)

		err := suite.uc.Deactivate(context.Background(), "abc123", "")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrPermissionDenied)
		suite.repoMock.AssertNotCalled(suite.T(), "Remove", mock.Anything, mock.Anything)
	})

	suite.Run("storage error", func() {
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{ShortCode: "abc123", OwnerID: "user-1"}, nil)
		suite.repoMock.
			On("Remove", mock.Anything, "abc123").
			Once().
			Return(suite.errUnknown)

		err := suite.uc.Deactivate(context.Background(), "abc123", "user-1")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
	})

	suite.Run("success", func() {
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{ShortCode: "abc123", OwnerID: "user-1"}, nil)
		suite.repoMock.
			On("Remove", mock.Anything, "abc123").
			Once().
			Return(nil)
		suite.cacheMock.
			On("Invalidate", mock.Anything, "abc123").
			Once().
			Return(nil)

		err := suite.uc.Deactivate(context.Background(), "abc123", "user-1")

		suite.NoError(err)
	})
}

func (suite *LinkUseCaseTestSuite) TestGetStats() {
	suite.Run("link not found", func() {
		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrLinkNotFound)

		link, err := suite.uc.GetStats(context.Background(), "abc123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrLinkNotFound)
		suite.Nil(link)
	})

	suite.Run("success", func() {
		accessedAt := time.Now()

		suite.repoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.Link{
				ShortCode:   "abc123",
				OriginalURL: "https://example.com",
				LinkStats:   entity.LinkStats{AccessCount: 42, LastAccessedAt: &accessedAt},
			}, nil)

		link, err := suite.uc.GetStats(context.Background(), "abc123")

		suite.NoError(err)
		suite.NotNil(link)
		suite.Equal(int64(42), link.AccessCount)
		suite.NotNil(link.LastAccessedAt)
	})
}

func (suite *LinkUseCaseTestSuite) TestSearch() {
	suite.Run("storage error", func() {
		suite.repoMock.
			On("SearchByOriginalURL", mock.Anything, "example.com", "").
			Once().
			Return(nil, suite.errUnknown)

		links, err := suite.uc.Search(context.Background(), "example.com", "")

		suite.Error(err)
		suite.Nil(links)
	})

	suite.Run("success", func() {
		suite.repoMock.
			On("SearchByOriginalURL", mock.Anything, "example.com", "user-1").
			Once().
			Return([]*entity.Link{{ShortCode: "abc123"}}, nil)

		links, err := suite.uc.Search(context.Background(), "example.com", "user-1")

		suite.NoError(err)
		suite.Len(links, 1)
	})
}

func TestLinkUseCase(t *testing.T) {
	suite.Run(t, new(LinkUseCaseTestSuite))
}
