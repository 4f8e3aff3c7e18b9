// Package entitlement вычисляет отображаемый бейдж пользователя по уровню
// подписки и имени. Привилегированные имена из списка администраторов
// получают бейдж ADMIN+ независимо от сохранённого уровня: привилегия
// привязана к личности, а не к подписке.
package entitlement

import (
	"strings"

	"github.com/lpxlsl/plasma-services/internal/models"
)

// Badge описывает бейдж рядом с именем пользователя: текст и параметры
// отображения (градиент, цвет текста, свечение), которые ожидает фронтенд.
type Badge struct {
	Text      string `json:"text"`
	Color     string `json:"color"`
	TextColor string `json:"textColor"`
	Glow      string `json:"glow"`
}

// Resolver сопоставляет пару (уровень, имя) с бейджем.
// Список привилегированных имён задаётся конфигурацией и сравнивается
// регистронезависимо.
type Resolver struct {
	admins []string
}

// NewResolver создает новый Resolver с указанным списком привилегированных имён.
func NewResolver(admins []string) *Resolver {
	return &Resolver{admins: admins}
}

// IsPrivileged сообщает, входит ли имя в список привилегированных.
func (r *Resolver) IsPrivileged(username string) bool {
	for _, admin := range r.admins {
		if strings.EqualFold(admin, username) {
			return true
		}
	}
	return false
}

// Resolve возвращает бейдж для указанных уровня подписки и имени.
// Для уровня none без привилегии бейджа нет, возвращается nil.
// Функция чистая: одинаковые аргументы всегда дают одинаковый результат.
func (r *Resolver) Resolve(tier models.Tier, username string) *Badge {
	if r.IsPrivileged(username) {
		return &Badge{
			Text:      "ADMIN+",
			Color:     "from-red-500 to-orange-500",
			TextColor: "text-white",
			Glow:      "shadow-red-500/50",
		}
	}

	switch tier {
	case models.TierBasic:
		return &Badge{
			Text:      "BASIC",
			Color:     "from-amber-600 to-amber-800",
			TextColor: "text-white",
			Glow:      "shadow-amber-500/50",
		}
	case models.TierSilver:
		return &Badge{
			Text:      "SILVER",
			Color:     "from-gray-400 to-gray-600",
			TextColor: "text-white",
			Glow:      "shadow-gray-400/50",
		}
	case models.TierGold:
		return &Badge{
			Text:      "GOLD",
			Color:     "from-yellow-400 to-yellow-600",
			TextColor: "text-black",
			Glow:      "shadow-yellow-400/50",
		}
	default:
		return nil
	}
}
