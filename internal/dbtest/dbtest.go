// Package dbtest provides an in-memory migrated store and fixtures for tests
package dbtest

import (
	"testing"
	"time"

	"travel_api/internal/db"
	"travel_api/internal/domain"
	"travel_api/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/gosimple/slug"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain password of every fixture user
const Password = "password"

// Open returns a migrated in-memory SQLite database closed at test cleanup
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// one connection, otherwise each would see its own empty memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// Today is the current UTC day
func Today() time.Time {
	return domain.TruncateDay(time.Now())
}

// Travel inserts a public five day travel named name
func Travel(t testing.TB, gdb *gorm.DB, name string) domain.Travel {
	t.Helper()
	travel := domain.Travel{
		Name:         name,
		Slug:         slug.Make(name),
		Description:  "Description of " + name,
		IsPublic:     true,
		NumberOfDays: 5,
	}
	require.NoError(t, gdb.Create(&travel).Error)
	return travel
}

// Tour inserts a tour of travel. start is an offset in days from today and
// the tour lasts days days. price is in minor units
func Tour(t testing.TB, gdb *gorm.DB, travel domain.Travel, price int64, start, days int) domain.Tour {
	t.Helper()
	from := Today().AddDate(0, 0, start)
	tour := domain.Tour{
		TravelID:  travel.ID,
		Name:      travel.Name + " tour",
		StartDate: from,
		EndDate:   from.AddDate(0, 0, days),
		Price:     price,
	}
	require.NoError(t, gdb.Create(&tour).Error)
	return tour
}

// User inserts a user holding roles, with Password as password
func User(t testing.TB, gdb *gorm.DB, email string, roles ...string) domain.User {
	t.Helper()
	hash, err := utils.HashPassword(Password)
	require.NoError(t, err)
	user := domain.User{Name: "Test User", Email: email, Password: hash}
	require.NoError(t, gdb.Create(&user).Error)
	if len(roles) > 0 {
		var rs []domain.Role
		require.NoError(t, gdb.Where("name IN ?", roles).Find(&rs).Error)
		require.NoError(t, gdb.Model(&user).Association("Roles").Append(rs))
		user.Roles = rs
	}
	return user
}
