package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// LeaderboardKey returns the cache key holding the serialized public leaderboard.
func (r *CacheKeyStruct) LeaderboardKey() string {
	return "leaderboard:snapshot"
}

// LeaderboardChannel returns the Redis PubSub channel for leaderboard updates.
func (r *CacheKeyStruct) LeaderboardChannel() string {
	return "leaderboard:updates"
}

// AnalyticsReportKey returns the cache key for the admin engagement report.
func (r *CacheKeyStruct) AnalyticsReportKey() string {
	return "analytics:report"
}

var CacheKey = NewCacheKeyStruct()
