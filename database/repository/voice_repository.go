package repository

import (
	"github.com/Shaanadrian1/AuthAudioBot/database/model"

	"gorm.io/gorm"
)

// VoiceRepository gives access to the speech voice catalog.
type VoiceRepository interface {
	FindByVoiceId(voiceId string) (*model.Voice, error)
	FindById(id int) (*model.Voice, error)
	FindAll() ([]*model.Voice, error)
	FindEnabled() ([]*model.Voice, error)
	Count() (int64, error)
	Create(voice *model.Voice) error
	Update(voice *model.Voice) error
	Delete(id int) error

	GetDB() *gorm.DB
}

type voiceRepository struct {
	db *gorm.DB
}

func NewVoiceRepository(db *gorm.DB) VoiceRepository {
	return &voiceRepository{
		db: db,
	}
}

func (r *voiceRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *voiceRepository) FindByVoiceId(voiceId string) (*model.Voice, error) {
	voice := &model.Voice{}
	err := r.db.Model(model.Voice{}).Where("voice_id = ?", voiceId).First(voice).Error
	if err != nil {
		return nil, err
	}
	return voice, nil
}

func (r *voiceRepository) FindById(id int) (*model.Voice, error) {
	voice := &model.Voice{}
	err := r.db.Model(model.Voice{}).Where("id = ?", id).First(voice).Error
	if err != nil {
		return nil, err
	}
	return voice, nil
}

func (r *voiceRepository) FindAll() ([]*model.Voice, error) {
	var voices []*model.Voice
	err := r.db.Model(model.Voice{}).Order("name").Find(&voices).Error
	if err != nil {
		return nil, err
	}
	return voices, nil
}

func (r *voiceRepository) FindEnabled() ([]*model.Voice, error) {
	var voices []*model.Voice
	err := r.db.Model(model.Voice{}).Where("enable = ?", true).Order("name").Find(&voices).Error
	if err != nil {
		return nil, err
	}
	return voices, nil
}

func (r *voiceRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(model.Voice{}).Count(&count).Error
	return count, err
}

func (r *voiceRepository) Create(voice *model.Voice) error {
	return r.db.Create(voice).Error
}

func (r *voiceRepository) Update(voice *model.Voice) error {
	return r.db.Save(voice).Error
}

func (r *voiceRepository) Delete(id int) error {
	return r.db.Where("id = ?", id).Delete(model.Voice{}).Error
}
