package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cydxin/pixelheart-sdk/models"
)

// SeriesService 作品系列
type SeriesService struct {
	*Service
	series *models.SeriesDAO
}

func NewSeriesService(s *Service) *SeriesService {
	return &SeriesService{Service: s, series: models.NewSeriesDAO(s.DB)}
}

func (s *SeriesService) ListSeries(ctx context.Context) ([]Series, error) {
	rows, err := s.series.WithDB(s.DB.WithContext(ctx)).List()
	if err != nil {
		return nil, platformErr("list series", err)
	}
	out := make([]Series, 0, len(rows))
	for _, r := range rows {
		out = append(out, toSeries(r))
	}
	return out, nil
}

func (s *SeriesService) CreateSeries(ctx context.Context, name string) (Series, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Series{}, &PlatformError{Op: "create series", Msg: "series name is required"}
	}
	row := models.Series{Name: name}
	if err := s.series.WithDB(s.DB.WithContext(ctx)).Create(&row); err != nil {
		return Series{}, platformErr("create series", err)
	}
	return toSeries(row), nil
}

// RenameSeries 只改系列名；已有套图的 series_name 快照不回写
func (s *SeriesService) RenameSeries(ctx context.Context, id, name string) (Series, error) {
	sid, err := parseID("rename series", id)
	if err != nil {
		return Series{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Series{}, &PlatformError{Op: "rename series", Msg: "series name is required"}
	}
	dao := s.series.WithDB(s.DB.WithContext(ctx))
	n, err := dao.Rename(sid, name)
	if err != nil {
		return Series{}, platformErr("rename series", err)
	}
	if n == 0 {
		ok, err := dao.Exists(sid)
		if err != nil {
			return Series{}, platformErr("rename series", err)
		}
		if !ok {
			return Series{}, platformErr("rename series", fmt.Errorf("series %s: %w", id, ErrNotFound))
		}
	}
	return Series{ID: id, Name: name}, nil
}

// DeleteSeries 只删系列，不影响引用它的套图
func (s *SeriesService) DeleteSeries(ctx context.Context, id string) error {
	sid, err := parseID("delete series", id)
	if err != nil {
		return err
	}
	if _, err := s.series.WithDB(s.DB.WithContext(ctx)).Delete(sid); err != nil {
		return platformErr("delete series", err)
	}
	return nil
}
