package domain

import "time"

// Ledger reasons stored in points_history.reason.
const (
	ReasonCheckin    = "checkin"
	ReasonSpin       = "spin"
	ReasonReferral   = "referral"
	ReasonWithdrawal = "withdrawal"
	ReasonAdmin      = "admin"
)

const (
	TxTypeCredit = "credit"
	TxTypeDebit  = "debit"
)

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

const (
	EventImpression = "impression"
	EventClick      = "click"
	EventUnknown    = "unknown"
)

const (
	NotificationWithdrawalRequested = "WITHDRAWAL_REQUESTED"
	NotificationReferralCredited    = "REFERRAL_CREDITED"
)

// Setting keys read from system_settings / roulette_settings.
const (
	SettingCheckinReward  = "checkin_reward"
	SettingInviteReward   = "invite_reward"
	SettingMinWithdrawal  = "min_withdrawal"
	SettingMaxWithdrawal  = "max_withdrawal"
	SettingMaxDailySpins  = "max_daily_spins"
	SettingPrizeKeyPrefix = "prize_"
)

const (
	DefaultCheckinReward = 100
	DefaultInviteReward  = 1000
	DefaultMaxDailySpins = 10
	DefaultMinWithdrawal = 10
	DefaultMaxWithdrawal = 1000
)

// DefaultPrizeValues is the 8-slot wheel used when roulette_settings has no overrides.
var DefaultPrizeValues = []int64{100, 250, 500, 750, 1000, 1500, 2000, 5000}

// Ledger descriptions shown to the app.
const (
	DescCheckin        = "Check-in diário"
	DescSpinFormat     = "Roleta da Sorte - Ganhou %d pontos"
	DescInviteFormat   = "Convite aceito - %s"
	DescWithdrawFormat = "Saque solicitado - ID: %d"
	DescAdminDefault   = "Pontos adicionados pelo admin"
)

// Monetag sends these literals when it failed to expand its own macros.
const (
	PlaceholderSubID  = "{sub_id}"
	PlaceholderSubID2 = "{sub_id2}"
)

// SessionTTL is how long an ad-view session can attribute a postback.
const SessionTTL = 5 * time.Minute

// ReferralCodeLength and alphabet for generated invite codes.
const (
	ReferralCodeLength   = 8
	ReferralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Wheel greetings by server-local hour.
const (
	GreetingMorning   = "BOM DIA"
	GreetingAfternoon = "BOA TARDE"
	GreetingNight     = "BOA NOITE"
)
