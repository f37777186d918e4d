package redis

import (
	"fmt"

	"github.com/promoarcade/snakesladders/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "slgame"

// Key generation functions for each entity type

// playerKey returns the Redis key for a PlayerRecord
func playerKey(key model.PlayerKey) string {
	return fmt.Sprintf("%s:player:%s:%s", keyPrefix, key.Area, key.Email)
}

// areaPlayersIndexKey returns the Redis key for the SET of player keys in an area
func areaPlayersIndexKey(area string) string {
	return fmt.Sprintf("%s:idx:area_players:%s", keyPrefix, area)
}

// prizeConfigKey returns the Redis key for an AreaPrizeConfig
func prizeConfigKey(area string) string {
	return fmt.Sprintf("%s:prize_config:%s", keyPrefix, area)
}

// grantKey returns the Redis key for an area's most recent GrantRecord
func grantKey(area string) string {
	return fmt.Sprintf("%s:grant:%s", keyPrefix, area)
}

// adminCredentialKey returns the Redis key for the AdminCredential singleton
func adminCredentialKey() string {
	return fmt.Sprintf("%s:admin_credential", keyPrefix)
}

// areaLockKey returns the Redis key for an area's lease lock
func areaLockKey(area string) string {
	return fmt.Sprintf("%s:lock:area:%s", keyPrefix, area)
}
