package repository

import (
	"github.com/Shaanadrian1/AuthAudioBot/database/model"

	"gorm.io/gorm"
)

// SettingRepository gives access to panel settings stored as key/value rows.
type SettingRepository interface {
	FindAll() ([]*model.Setting, error)
	FindByKey(key string) (*model.Setting, error)
	Create(setting *model.Setting) error
	Update(setting *model.Setting) error
	DeleteByKey(key string) error
	DeleteAll() error

	GetDB() *gorm.DB
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{
		db: db,
	}
}

func (r *settingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *settingRepository) FindAll() ([]*model.Setting, error) {
	var settings []*model.Setting
	err := r.db.Model(model.Setting{}).Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) FindByKey(key string) (*model.Setting, error) {
	setting := &model.Setting{}
	err := r.db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (r *settingRepository) Create(setting *model.Setting) error {
	return r.db.Create(setting).Error
}

func (r *settingRepository) Update(setting *model.Setting) error {
	return r.db.Save(setting).Error
}

func (r *settingRepository) DeleteByKey(key string) error {
	return r.db.Where("key = ?", key).Delete(model.Setting{}).Error
}

func (r *settingRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(model.Setting{}).Error
}
