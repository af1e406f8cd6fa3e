package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrphanScanCoversEveryReference(t *testing.T) {
	sql := orphanScanSQL()
	for _, table := range []string{"comments o", "likes o", "playlist_videos o", "watch_histories o"} {
		assert.Contains(t, sql, "FROM "+table+" LEFT JOIN videos")
	}
	assert.Equal(t, 3, strings.Count(sql, " UNION "))
	assert.Contains(t, sql, "o.target_type = ?")
	assert.True(t, strings.HasSuffix(sql, "LIMIT ?"))
}
