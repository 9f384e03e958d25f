package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ProfileDAO 封装 Profile / Identity 相关的数据库操作
type ProfileDAO struct {
	db *gorm.DB
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{db: db}
}

func (dao *ProfileDAO) WithDB(db *gorm.DB) *ProfileDAO {
	if db == nil {
		return dao
	}
	return &ProfileDAO{db: db}
}

func (dao *ProfileDAO) CreateIdentity(identity *Identity) error {
	return dao.db.Create(identity).Error
}

func (dao *ProfileDAO) Create(profile *Profile) error {
	return dao.db.Create(profile).Error
}

func (dao *ProfileDAO) FindIdentityByEmail(email string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var i Identity
	if err := dao.db.Where("email = ?", email).First(&i).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (dao *ProfileDAO) FindIdentityByID(id string) (*Identity, error) {
	var i Identity
	if err := dao.db.Where("id = ?", id).First(&i).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (dao *ProfileDAO) FindByID(id string) (*Profile, error) {
	var p Profile
	if err := dao.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (dao *ProfileDAO) FindByUsername(username string) (*Profile, error) {
	var p Profile
	if err := dao.db.Where("username = ?", username).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDs 批量查询，返回 id -> Profile
func (dao *ProfileDAO) FindByIDs(ids []string) (map[string]Profile, error) {
	out := make(map[string]Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []Profile
	if err := dao.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

// List 全部用户，按注册时间排序
func (dao *ProfileDAO) List() ([]Profile, error) {
	var rows []Profile
	err := dao.db.Order("created_at ASC, id ASC").Find(&rows).Error
	return rows, err
}

func (dao *ProfileDAO) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := dao.db.Model(&Profile{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (dao *ProfileDAO) ExistsByEmail(email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}
	var count int64
	err := dao.db.Model(&Identity{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (dao *ProfileDAO) UpdateFields(id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return dao.db.Model(&Profile{}).Where("id = ?", id).Updates(updates).Error
}

func (dao *ProfileDAO) SetBanned(id string, banned bool) (int64, error) {
	res := dao.db.Model(&Profile{}).Where("id = ?", id).Update("is_banned", banned)
	return res.RowsAffected, res.Error
}

// Delete 只删除 profile 行，identity 保留
func (dao *ProfileDAO) Delete(id string) (int64, error) {
	res := dao.db.Where("id = ?", id).Delete(&Profile{})
	return res.RowsAffected, res.Error
}

func (dao *ProfileDAO) TouchSignIn(id string) error {
	return dao.db.Model(&Identity{}).Where("id = ?", id).Update("last_sign_in_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func (dao *ProfileDAO) IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
