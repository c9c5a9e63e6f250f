package repository

import (
	"github.com/Shaanadrian1/AuthAudioBot/database/model"

	"gorm.io/gorm"
)

// AccessCodeRepository gives access to quota codes.
type AccessCodeRepository interface {
	FindByCode(code string) (*model.AccessCode, error)
	FindById(id int) (*model.AccessCode, error)
	FindAll() ([]*model.AccessCode, error)
	FindEnabled() ([]*model.AccessCode, error)
	Count() (int64, error)
	Create(code *model.AccessCode) error
	Update(code *model.AccessCode) error
	Delete(id int) error
	AddQuotaUsed(code string, chars int64) error
	IncrementUsers(code string) error

	GetDB() *gorm.DB
}

type accessCodeRepository struct {
	db *gorm.DB
}

func NewAccessCodeRepository(db *gorm.DB) AccessCodeRepository {
	return &accessCodeRepository{
		db: db,
	}
}

func (r *accessCodeRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *accessCodeRepository) FindByCode(code string) (*model.AccessCode, error) {
	accessCode := &model.AccessCode{}
	err := r.db.Model(model.AccessCode{}).Where("code = ?", code).First(accessCode).Error
	if err != nil {
		return nil, err
	}
	return accessCode, nil
}

func (r *accessCodeRepository) FindById(id int) (*model.AccessCode, error) {
	accessCode := &model.AccessCode{}
	err := r.db.Model(model.AccessCode{}).Where("id = ?", id).First(accessCode).Error
	if err != nil {
		return nil, err
	}
	return accessCode, nil
}

func (r *accessCodeRepository) FindAll() ([]*model.AccessCode, error) {
	var codes []*model.AccessCode
	err := r.db.Model(model.AccessCode{}).Order("created_at desc").Find(&codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *accessCodeRepository) FindEnabled() ([]*model.AccessCode, error) {
	var codes []*model.AccessCode
	err := r.db.Model(model.AccessCode{}).Where("enable = ?", true).Find(&codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *accessCodeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(model.AccessCode{}).Count(&count).Error
	return count, err
}

func (r *accessCodeRepository) Create(code *model.AccessCode) error {
	return r.db.Create(code).Error
}

func (r *accessCodeRepository) Update(code *model.AccessCode) error {
	return r.db.Save(code).Error
}

func (r *accessCodeRepository) Delete(id int) error {
	return r.db.Where("id = ?", id).Delete(model.AccessCode{}).Error
}

func (r *accessCodeRepository) AddQuotaUsed(code string, chars int64) error {
	return r.db.Model(model.AccessCode{}).
		Where("code = ?", code).
		Update("quota_used", gorm.Expr("quota_used + ?", chars)).Error
}

func (r *accessCodeRepository) IncrementUsers(code string) error {
	return r.db.Model(model.AccessCode{}).
		Where("code = ?", code).
		Update("current_users", gorm.Expr("current_users + 1")).Error
}
