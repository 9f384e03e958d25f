package pixelheart

import (
	"context"
	"fmt"

	"github.com/cydxin/pixelheart-sdk/models"
	"gorm.io/gorm"
)

// backfillBatch 每批处理的评论数
const backfillBatch = 500

// BackfillCommentAuthorNames 给作者名为空的历史评论补上用户名。
// 评论写入时就保存作者名，之后改名不影响旧评论；老数据没有这一列时按当前用户名补齐，
// 作者资料已删除的记为 Unknown。返回补齐的条数，可重复执行。
func (e *Engine) BackfillCommentAuthorNames(ctx context.Context) (int, error) {
	db := e.config.DB.WithContext(ctx)
	if !db.Migrator().HasColumn(&models.Comment{}, "username") {
		e.log.Info().Msg("comment username column missing, run AutoMigrate first")
		return 0, nil
	}

	total := 0
	for {
		n, err := e.backfillCommentBatch(db)
		if err != nil {
			return total, fmt.Errorf("backfill comment authors: %w", err)
		}
		total += n
		if n < backfillBatch {
			break
		}
	}
	e.log.Info().Int("comments", total).Msg("comment author names backfilled")
	return total, nil
}

func (e *Engine) backfillCommentBatch(db *gorm.DB) (int, error) {
	n := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		comments := models.NewCommentDAO(tx)
		rows, err := comments.ListMissingUsername(backfillBatch)
		if err != nil {
			return err
		}
		uids := make([]string, 0, len(rows))
		for _, r := range rows {
			uids = append(uids, r.UserID)
		}
		authors, err := models.NewProfileDAO(tx).FindByIDs(uids)
		if err != nil {
			return err
		}
		for _, r := range rows {
			name := "Unknown"
			if p, ok := authors[r.UserID]; ok && p.Username != "" {
				name = p.Username
			}
			if err := comments.SetUsername(r.ID, name); err != nil {
				return err
			}
		}
		n = len(rows)
		return nil
	})
	return n, err
}
