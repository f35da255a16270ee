package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/suite"
)

type RateLimiterTestSuite struct {
	suite.Suite
	errUnknown error
	mock       redismock.ClientMock
	limiter    *RateLimiter
}

func (suite *RateLimiterTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
}

func (suite *RateLimiterTestSuite) SetupSubTest() {
	client, mock := redismock.NewClientMock()

	suite.mock = mock
	suite.limiter = NewRateLimiter(client, 60, time.Minute)
}

func (suite *RateLimiterTestSuite) TearDownSubTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *RateLimiterTestSuite) TestAllow() {
	suite.Run("first request opens the window", func() {
		suite.mock.ExpectIncr("rate_limit:203.0.113.7").SetVal(1)
		suite.mock.ExpectExpire("rate_limit:203.0.113.7", time.Minute).SetVal(true)

		ok, retryAfter, err := suite.limiter.Allow(context.Background(), "203.0.113.7")

		suite.NoError(err)
		suite.True(ok)
		suite.Zero(retryAfter)
	})

	suite.Run("request within the budget", func() {
		suite.mock.ExpectIncr("rate_limit:203.0.113.7").SetVal(42)

		ok, retryAfter, err := suite.limiter.Allow(context.Background(), "203.0.113.7")

		suite.NoError(err)
		suite.True(ok)
		suite.Zero(retryAfter)
	})

	suite.Run("budget exhausted reports time until the window resets", func() {
		suite.mock.ExpectIncr("rate_limit:203.0.113.7").SetVal(61)
		suite.mock.ExpectTTL("rate_limit:203.0.113.7").SetVal(30 * time.Second)

		ok, retryAfter, err := suite.limiter.Allow(context.Background(), "203.0.113.7")

		suite.NoError(err)
		suite.False(ok)
		suite.Equal(30*time.Second, retryAfter)
	})

	suite.Run("missing ttl falls back to the full window", func() {
		suite.mock.ExpectIncr("rate_limit:203.0.113.7").SetVal(61)
		suite.mock.ExpectTTL("rate_limit:203.0.113.7").SetVal(-1)

		ok, retryAfter, err := suite.limiter.Allow(context.Background(), "203.0.113.7")

		suite.NoError(err)
		suite.False(ok)
		suite.Equal(time.Minute, retryAfter)
	})

	suite.Run("backend error", func() {
		suite.mock.ExpectIncr("rate_limit:203.0.113.7").SetErr(suite.errUnknown)

		ok, _, err := suite.limiter.Allow(context.Background(), "203.0.113.7")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.False(ok)
	})
}

func TestRateLimiter(t *testing.T) {
	suite.Run(t, new(RateLimiterTestSuite))
}
