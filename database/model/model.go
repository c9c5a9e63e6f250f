// Package model contains the database model definitions, split by domain:
// - user.go: User (panel admin account)
// - bot_user.go: BotUser (Telegram user with quota and speech prefs)
// - access_code.go: AccessCode
// - voice.go: Voice (catalog entry)
// - usage.go: UsageRecord
// - setting.go: Setting (key/value runtime settings)
// - seeder.go: HistoryOfSeeders
package model
