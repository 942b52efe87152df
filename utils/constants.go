package utils

// Redis key prefixes.
const (
	AuthCachePrefix   = "auth:"
	RoleCachePrefix   = "role:"
	ChatChannelPrefix = "chat:"
)
