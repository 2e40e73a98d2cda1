//go:build integration

package i18n_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"appeal/internal/i18n"
	"appeal/pkg/testutil/containers"
)

type CachedProviderSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestCachedProviderSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedProviderSuite))
}

func (s *CachedProviderSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
}

func (s *CachedProviderSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

// countingProvider records how often the inner provider is consulted.
type countingProvider struct {
	inner i18n.Provider
	calls int
}

func (p *countingProvider) Labels(ctx context.Context, locale i18n.Locale) (i18n.Labels, error) {
	p.calls++
	return p.inner.Labels(ctx, locale)
}

func (s *CachedProviderSuite) TestSecondLookupServedFromCache() {
	ctx := context.Background()

	inner := &countingProvider{inner: i18n.NewStatic()}
	provider := i18n.NewCachedProvider(inner, s.redis.Client, time.Hour)

	first, err := provider.Labels(ctx, i18n.LocaleHindi)
	s.Require().NoError(err)
	s.Equal(1, inner.calls)

	second, err := provider.Labels(ctx, i18n.LocaleHindi)
	s.Require().NoError(err)
	s.Equal(1, inner.calls, "second lookup should not reach the inner provider")
	s.Equal(first, second)
}

func (s *CachedProviderSuite) TestLocalesAreCachedIndependently() {
	ctx := context.Background()

	inner := &countingProvider{inner: i18n.NewStatic()}
	provider := i18n.NewCachedProvider(inner, s.redis.Client, time.Hour)

	english, err := provider.Labels(ctx, i18n.LocaleEnglish)
	s.Require().NoError(err)

	hindi, err := provider.Labels(ctx, i18n.LocaleHindi)
	s.Require().NoError(err)

	s.Equal(2, inner.calls)
	s.NotEqual(english.HomeVisit, hindi.HomeVisit)
}

func (s *CachedProviderSuite) TestCorruptEntryFallsThrough() {
	ctx := context.Background()

	inner := &countingProvider{inner: i18n.NewStatic()}
	provider := i18n.NewCachedProvider(inner, s.redis.Client, time.Hour)

	err := s.redis.Client.Set(ctx, "appeal:labels:en", "not json", time.Hour).Err()
	s.Require().NoError(err)

	labels, err := provider.Labels(ctx, i18n.LocaleEnglish)
	s.Require().NoError(err)
	s.Equal(1, inner.calls)

	want, err := i18n.NewStatic().Labels(ctx, i18n.LocaleEnglish)
	s.Require().NoError(err)
	s.Equal(want, labels)
}
