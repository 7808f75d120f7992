package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding a user's active session JTI.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// ClassCatalogKey returns the cache key for the public class catalog JSON.
func (r *CacheKeyStruct) ClassCatalogKey() string {
	return "classes:catalog"
}

var CacheKey = NewCacheKeyStruct()
