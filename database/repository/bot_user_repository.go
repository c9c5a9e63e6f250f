package repository

import (
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/database/model"

	"gorm.io/gorm"
)

// BotUserRepository gives access to Telegram users known to the bot.
type BotUserRepository interface {
	FindByTelegramId(telegramId int64) (*model.BotUser, error)
	FindByAccessCode(code string) ([]*model.BotUser, error)
	FindAll() ([]*model.BotUser, error)
	Count() (int64, error)
	CountActiveSince(since time.Time) (int64, error)
	Create(user *model.BotUser) error
	Update(user *model.BotUser) error
	AddQuotaUsed(telegramId int64, chars int64) error
	TouchLastActive(telegramId int64, at time.Time) error

	GetDB() *gorm.DB
}

type botUserRepository struct {
	db *gorm.DB
}

func NewBotUserRepository(db *gorm.DB) BotUserRepository {
	return &botUserRepository{
		db: db,
	}
}

func (r *botUserRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *botUserRepository) FindByTelegramId(telegramId int64) (*model.BotUser, error) {
	user := &model.BotUser{}
	err := r.db.Model(model.BotUser{}).Where("telegram_id = ?", telegramId).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *botUserRepository) FindByAccessCode(code string) ([]*model.BotUser, error) {
	var users []*model.BotUser
	err := r.db.Model(model.BotUser{}).Where("access_code = ?", code).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *botUserRepository) FindAll() ([]*model.BotUser, error) {
	var users []*model.BotUser
	err := r.db.Model(model.BotUser{}).Order("last_active desc").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *botUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(model.BotUser{}).Count(&count).Error
	return count, err
}

func (r *botUserRepository) CountActiveSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(model.BotUser{}).Where("last_active >= ?", since).Count(&count).Error
	return count, err
}

func (r *botUserRepository) Create(user *model.BotUser) error {
	return r.db.Create(user).Error
}

func (r *botUserRepository) Update(user *model.BotUser) error {
	return r.db.Save(user).Error
}

// AddQuotaUsed increments the used counter in place so concurrent
// generations never lose an update.
func (r *botUserRepository) AddQuotaUsed(telegramId int64, chars int64) error {
	return r.db.Model(model.BotUser{}).
		Where("telegram_id = ?", telegramId).
		Update("quota_used", gorm.Expr("quota_used + ?", chars)).Error
}

func (r *botUserRepository) TouchLastActive(telegramId int64, at time.Time) error {
	return r.db.Model(model.BotUser{}).
		Where("telegram_id = ?", telegramId).
		Update("last_active", at).Error
}
