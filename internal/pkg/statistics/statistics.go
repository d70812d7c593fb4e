package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/LarsJung/StillMind/app/models"
	"github.com/LarsJung/StillMind/internal/pkg/cache"
	"github.com/LarsJung/StillMind/internal/pkg/database"
)

const (
	CacheKeyUsersTotal    = "statistics:users:total"
	CacheKeyJournalsTotal = "statistics:journals:total"
	CacheKeyMoodsTotal    = "statistics:moods:total"
	CacheKeyMoodsDaily    = "statistics:moods:daily:%s" // Format with date YYYY-MM-DD
	CacheExpiration       = 30 * time.Minute
)

// StatisticsData holds the aggregate counters exposed on the stats endpoint.
type StatisticsData struct {
	TotalUsers    int `json:"total_users"`
	TotalJournals int `json:"total_journals"`
	TotalMoods    int `json:"total_moods"`
	TodayMoods    int `json:"today_moods"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached counters are older than the
// update interval.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached counters when they are stale.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded to refresh.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recounts all aggregates and stores them in the cache.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting users: %v", err)
		return err
	}

	var totalJournals int64
	if err := db.Model(&models.Journal{}).Count(&totalJournals).Error; err != nil {
		log.Printf("Error counting journals: %v", err)
		return err
	}

	var totalMoods int64
	if err := db.Model(&models.Mood{}).Count(&totalMoods).Error; err != nil {
		log.Printf("Error counting moods: %v", err)
		return err
	}

	today := time.Now().Format("2006-01-02")
	var todayMoods int64
	if err := db.Model(&models.Mood{}).
		Where("DATE(created_at) = ?", today).
		Count(&todayMoods).Error; err != nil {
		log.Printf("Error counting today's moods: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsersTotal, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyJournalsTotal, strconv.FormatInt(totalJournals, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyMoodsTotal, strconv.FormatInt(totalMoods, 10), CacheExpiration); err != nil {
		return err
	}
	dailyKey := fmt.Sprintf(CacheKeyMoodsDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayMoods, 10), CacheExpiration); err != nil {
		return err
	}

	return nil
}

// GetStatistics returns the cached aggregates, refreshing them when stale.
func GetStatistics() StatisticsData {
	UpdateCacheIfNeeded()

	data := StatisticsData{}
	data.TotalUsers = readCachedCount(CacheKeyUsersTotal)
	data.TotalJournals = readCachedCount(CacheKeyJournalsTotal)
	data.TotalMoods = readCachedCount(CacheKeyMoodsTotal)
	data.TodayMoods = readCachedCount(fmt.Sprintf(CacheKeyMoodsDaily, time.Now().Format("2006-01-02")))

	return data
}

func readCachedCount(key string) int {
	value, err := cache.Get(key)
	if err != nil {
		return 0
	}
	count, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return count
}
