package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"hotelbooking/shared/cache"
	"hotelbooking/shared/constant"
	"hotelbooking/shared/dto"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins the prefix and parts with ':'. Empty parts are skipped.
func BuildCacheKey(prefix string, parts ...string) string {
	keys := []string{prefix}

	for _, part := range parts {
		if part == constant.Empty {
			continue
		}

		keys = append(keys, part)
	}

	return strings.Join(keys, cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from the paging params and the filter tree.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup, extra ...any) string {
	payload, err := json.Marshal(struct {
		Params dto.QueryParams
		Filter dto.FilterGroup
		Extra  []any
	}{params, filter, extra})
	if err != nil {
		payload = fmt.Appendf(nil, "%v%v%v", params, filter, extra)
	}

	sum := sha256.Sum256(payload)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:16]))
}

// InvalidateCaches clears every key under prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

func ConvertStringToInt(value string) (int, error) {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("failed to convert string to int: %w", err)
	}

	return result, nil
}

func ConvertStringToFloat(value string) (float64, error) {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to convert string to float: %w", err)
	}

	return result, nil
}
