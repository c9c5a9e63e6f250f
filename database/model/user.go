package model

type User struct {
	Id              int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	TwoFactorEnable bool   `json:"twoFactorEnable" gorm:"default:false"`
	TwoFactorToken  string `json:"twoFactorToken"`
}
