package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/dto"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAdminStats(t *testing.T) {
	db := setupDB(t)
	auth := NewAuthService(db, testConfig())
	uploads := NewUploadService(db, newStore(t))
	charts := NewChartService(db)
	admin := NewAdminService(db)

	alice := registerUser(t, auth, "alice", "alice@x.com")
	registerUser(t, auth, "bob", "bob@x.com")

	summary := ingestSample(t, uploads, alice.ID, "report.xlsx")
	_, err := charts.Create(alice.ID, &dto.CreateChartRequest{
		Title: "Revenue", Type: "bar", XAxis: "month", YAxis: "revenue",
		UploadID: summary.ID,
	})
	require.NoError(t, err)

	stats, err := admin.Stats()
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Stats.TotalUsers)
	require.Equal(t, int64(1), stats.Stats.TotalUploads)
	require.Equal(t, int64(1), stats.Stats.TotalCharts)

	require.Len(t, stats.RecentUploads, 1)
	require.Equal(t, "report.xlsx", stats.RecentUploads[0].OriginalName)
	require.Equal(t, "alice", stats.RecentUploads[0].Username)
	require.Equal(t, "alice@x.com", stats.RecentUploads[0].Email)
}

func TestAdminListUsers(t *testing.T) {
	db := setupDB(t)
	auth := NewAuthService(db, testConfig())
	uploads := NewUploadService(db, newStore(t))
	admin := NewAdminService(db)

	alice := registerUser(t, auth, "alice", "alice@x.com")
	registerUser(t, auth, "bob", "bob@x.com")
	ingestSample(t, uploads, alice.ID, "report.xlsx")

	users, err := admin.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)

	byName := make(map[string]dto.AdminUser, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	require.Len(t, byName["alice"].Uploads, 1)
	require.Equal(t, "report.xlsx", byName["alice"].Uploads[0].OriginalName)
	require.Empty(t, byName["bob"].Uploads)
}

func TestAdminDeleteUser_Cascades(t *testing.T) {
	db := setupDB(t)
	auth := NewAuthService(db, testConfig())
	uploads := NewUploadService(db, newStore(t))
	charts := NewChartService(db)
	admin := NewAdminService(db)

	target := registerUser(t, auth, "doomed", "doomed@x.com")
	summary := ingestSample(t, uploads, target.ID, "report.xlsx")
	chart, err := charts.Create(target.ID, &dto.CreateChartRequest{
		Title: "Revenue", Type: "line", XAxis: "month", YAxis: "revenue",
		UploadID: summary.ID,
	})
	require.NoError(t, err)

	require.NoError(t, admin.DeleteUser(target.ID))

	var count int64
	db.Model(&models.User{}).Where("id = ?", target.ID).Count(&count)
	require.Zero(t, count)
	db.Model(&models.Upload{}).Where("id = ?", summary.ID).Count(&count)
	require.Zero(t, count)
	db.Model(&models.Chart{}).Where("id = ?", chart.ID).Count(&count)
	require.Zero(t, count)
}

func TestAdminDeleteUser_RefusesAdmins(t *testing.T) {
	db := setupDB(t)
	auth := NewAuthService(db, testConfig())
	uploads := NewUploadService(db, newStore(t))
	admin := NewAdminService(db)

	boss := registerAdmin(t, auth, "boss", "boss@x.com")
	summary := ingestSample(t, uploads, boss.ID, "report.xlsx")

	err := admin.DeleteUser(boss.ID)
	require.ErrorIs(t, err, ErrCannotDeleteAdmin)

	// Nothing was deleted.
	var count int64
	db.Model(&models.User{}).Where("id = ?", boss.ID).Count(&count)
	require.Equal(t, int64(1), count)
	db.Model(&models.Upload{}).Where("id = ?", summary.ID).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestAdminDeleteUser_NotFound(t *testing.T) {
	db := setupDB(t)
	admin := NewAdminService(db)

	err := admin.DeleteUser(uuid.New())
	require.ErrorIs(t, err, ErrUserNotFound)
}
