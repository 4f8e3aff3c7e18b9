package models

// TierCard описывает карточку платного уровня на странице Premium:
// название, цена и список возможностей. Каталог статический, покупка
// выполняется вне сервиса — через приглашение в сообщество.
type TierCard struct {
	Name     string   `json:"name"`
	Tier     Tier     `json:"tier"`
	Price    string   `json:"price"`
	Popular  bool     `json:"popular,omitempty"`
	Features []string `json:"features"`
}

// PremiumTiers возвращает каталог платных уровней в порядке возрастания цены.
func PremiumTiers() []TierCard {
	return []TierCard{
		{
			Name:  "Basic",
			Tier:  TierBasic,
			Price: "€5",
			Features: []string{
				"Faster Discord Response",
				"Basic Tool Access",
				"Community Support",
			},
		},
		{
			Name:    "Silver",
			Tier:    TierSilver,
			Price:   "€10",
			Popular: true,
			Features: []string{
				"Priority Discord Response",
				"Premium Tool Features",
				"Advanced Support",
				"Exclusive Commands",
			},
		},
		{
			Name:  "Gold",
			Tier:  TierGold,
			Price: "€20",
			Features: []string{
				"Instant Discord Response",
				"Full Premium Access",
				"VIP Support Channel",
				"Beta Feature Access",
				"Custom Tool Configurations",
			},
		},
	}
}
