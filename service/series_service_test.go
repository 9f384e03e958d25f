package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cydxin/pixelheart-sdk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesLifecycle(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	series := NewSeriesService(s)

	b, err := series.CreateSeries(ctx, "  Honkai  ")
	require.NoError(t, err)
	assert.Equal(t, "Honkai", b.Name)
	_, err = series.CreateSeries(ctx, "Arknights")
	require.NoError(t, err)

	_, err = series.CreateSeries(ctx, " ")
	var pe *PlatformError
	require.True(t, errors.As(err, &pe))

	list, err := series.ListSeries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Arknights", list[0].Name)

	renamed, err := series.RenameSeries(ctx, b.ID, "Honkai Star Rail")
	require.NoError(t, err)
	assert.Equal(t, "Honkai Star Rail", renamed.Name)

	_, err = series.RenameSeries(ctx, "999", "x")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, series.DeleteSeries(ctx, b.ID))
	// 不存在的也算成功
	require.NoError(t, series.DeleteSeries(ctx, b.ID))
	list, err = series.ListSeries(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteSeriesKeepsSets(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	set, _ := seedSetWithPhoto(t, s)

	list, err := NewSeriesService(s).ListSeries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, NewSeriesService(s).DeleteSeries(ctx, list[0].ID))

	got, err := NewSetService(s).GetSet(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, "Genshin Impact", got.Series)
}

func TestSocialLinksSingleton(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	social := NewSocialService(s)

	empty, err := social.GetSocialLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, SocialLinks{}, empty)

	_, err = social.UpdateSocialLinks(ctx, SocialLinks{Instagram: " @pixel ", Email: "hi@example.com"})
	require.NoError(t, err)
	saved, err := social.UpdateSocialLinks(ctx, SocialLinks{Instagram: "@pixelheart", Tiktok: "@ph"})
	require.NoError(t, err)
	assert.Equal(t, SocialLinks{Instagram: "@pixelheart", Tiktok: "@ph"}, saved)

	got, err := social.GetSocialLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	var n int64
	require.NoError(t, s.DB.Model(&models.SocialLink{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

// MySQL 同名改名返回 0 行受影响，不能当成不存在
func TestRenameSeriesToSameName(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	series := NewSeriesService(&Service{DB: gormDB})

	mock.ExpectExec("UPDATE `px_series` SET `name`=\\? WHERE id = \\?").
		WithArgs("Honkai", uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `px_series` WHERE id = \\?").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	got, err := series.RenameSeries(context.Background(), "7", "Honkai")
	require.NoError(t, err)
	assert.Equal(t, Series{ID: "7", Name: "Honkai"}, got)

	mock.ExpectExec("UPDATE `px_series` SET `name`=\\? WHERE id = \\?").
		WithArgs("Honkai", uint64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `px_series` WHERE id = \\?").
		WithArgs(uint64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	_, err = series.RenameSeries(context.Background(), "8", "Honkai")
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
