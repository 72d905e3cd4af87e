package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

const (
	searchKeyPrefix = "jobs:search:"
	lockKeyPrefix   = "jobs:lock:"
)

type jobSearchCacheKeyInput struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
	Page     int    `json:"page"`
}

func normalizeSearchValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// JobsSearchCacheKey hashes the normalised search so equivalent requests
// share one entry.
func JobsSearchCacheKey(params JobSearchParams) string {
	page := params.Page
	if page <= 0 {
		page = 1
	}
	b, _ := json.Marshal(jobSearchCacheKeyInput{
		Keywords: normalizeSearchValue(params.Keywords),
		Location: normalizeSearchValue(params.Location),
		Page:     page,
	})
	sum := sha256.Sum256(b)
	return searchKeyPrefix + hex.EncodeToString(sum[:])
}

func JobsSearchLockKey(searchKey string) string {
	searchKey = strings.TrimSpace(searchKey)
	return lockKeyPrefix + strings.TrimPrefix(searchKey, searchKeyPrefix)
}
