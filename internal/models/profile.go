// Package models содержит доменную модель профиля пользователя сайта,
// включающую имя, электронную почту, уровень подписки и даты регистрации
// и оформления подписки. Структуры используются в бизнес‑логике и при
// работе с хранилищем.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Tier — уровень подписки пользователя.
type Tier string

// Допустимые уровни подписки, от отсутствия подписки до максимального уровня.
const (
	TierNone   Tier = "none"
	TierBasic  Tier = "basic"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// ParseTier разбирает строковое значение уровня подписки.
// Сравнение регистронезависимое, возвращает ошибку для неизвестного уровня.
func ParseTier(s string) (Tier, error) {
	switch Tier(strings.ToLower(s)) {
	case TierNone:
		return TierNone, nil
	case TierBasic:
		return TierBasic, nil
	case TierSilver:
		return TierSilver, nil
	case TierGold:
		return TierGold, nil
	}
	return "", fmt.Errorf("unknown subscription tier: %q", s)
}

// Valid сообщает, является ли значение одним из допустимых уровней.
func (t Tier) Valid() bool {
	switch t {
	case TierNone, TierBasic, TierSilver, TierGold:
		return true
	}
	return false
}

// Profile представляет зарегистрированного пользователя сайта.
// Поле SubscriptionDate заполняется при переходе уровня подписки
// с none на любой платный уровень и сбрасывается при обратном переходе.
type Profile struct {
	UID              string     `json:"uid"`                        // Уникальный идентификатор профиля
	Username         string     `json:"username"`                   // Имя пользователя (регистр сохраняется для отображения)
	Email            string     `json:"email,omitempty"`            // Электронная почта, есть только у зарегистрированных
	SubscriptionTier Tier       `json:"subscriptionTier"`           // Текущий уровень подписки
	RegisteredAt     time.Time  `json:"registeredAt"`               // Момент регистрации, не изменяется
	SubscriptionDate *time.Time `json:"subscriptionDate,omitempty"` // Момент оформления подписки
}

// SameUsername сравнивает имя профиля с указанным регистронезависимо.
// Проверки привилегий и уникальность в реестре используют именно это сравнение,
// отображаемое имя при этом сохраняет исходный регистр.
func (p *Profile) SameUsername(username string) bool {
	return strings.EqualFold(p.Username, username)
}
