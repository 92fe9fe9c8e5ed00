package model

import (
	"encoding/json"

	apperrors "wellness-events/pkg/app_errors"
)

// Category is one of a closed set of wellness-practice types.
type Category string

const (
	CategoryYoga                     Category = "Yoga"
	CategoryMeditation               Category = "Meditation"
	CategoryPilates                  Category = "Pilates"
	CategoryTaiChi                   Category = "Tai Chi"
	CategoryQiGong                   Category = "Qi Gong"
	CategoryReiki                    Category = "Reiki"
	CategorySoundHealing             Category = "Sound Healing"
	CategoryAromatherapy             Category = "Aromatherapy"
	CategoryCrystalHealing           Category = "Crystal Healing"
	CategoryChakraBalancing          Category = "Chakra Balancing"
	CategoryBreathwork               Category = "Breathwork"
	CategoryMindfulness              Category = "Mindfulness"
	CategoryStressRelief             Category = "Stress Relief"
	CategoryEnergyHealing            Category = "Energy Healing"
	CategoryHolisticWellness         Category = "Holistic Wellness"
	CategorySpiritualCounseling      Category = "Spiritual Counseling"
	CategoryEnergyMentoring          Category = "Energy Mentoring"
	CategoryActiveSpiritualNutrition Category = "Active-Spiritual Nutrition"
	CategoryZhinengQigong            Category = "Zhineng Qigong"
	CategoryPersonalEmpowerment      Category = "Personal Empowerment"
	CategoryConsciousTeaching        Category = "Conscious Teaching"
	CategoryEnergyCenterCleansing    Category = "Energy Center Cleansing"
	CategoryConsciousAwakening       Category = "Conscious Awakening"
	CategoryTheosophy                Category = "Theosophy"
	CategoryUniversalHealing         Category = "Universal Healing"
	CategorySelfAwareness            Category = "Self-Awareness"
	CategoryHarmonization            Category = "Harmonization"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryYoga,
	CategoryMeditation,
	CategoryPilates,
	CategoryTaiChi,
	CategoryQiGong,
	CategoryReiki,
	CategorySoundHealing,
	CategoryAromatherapy,
	CategoryCrystalHealing,
	CategoryChakraBalancing,
	CategoryBreathwork,
	CategoryMindfulness,
	CategoryStressRelief,
	CategoryEnergyHealing,
	CategoryHolisticWellness,
	CategorySpiritualCounseling,
	CategoryEnergyMentoring,
	CategoryActiveSpiritualNutrition,
	CategoryZhinengQigong,
	CategoryPersonalEmpowerment,
	CategoryConsciousTeaching,
	CategoryEnergyCenterCleansing,
	CategoryConsciousAwakening,
	CategoryTheosophy,
	CategoryUniversalHealing,
	CategorySelfAwareness,
	CategoryHarmonization,
}

var categorySet = func() map[Category]struct{} {
	set := make(map[Category]struct{}, len(Categories))
	for _, c := range Categories {
		set[c] = struct{}{}
	}
	return set
}()

// IsValid reports whether c belongs to the enumeration. Matching is exact.
func (c Category) IsValid() bool {
	_, ok := categorySet[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", apperrors.ErrInvalidCategory
	}
	return c, nil
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return apperrors.ErrInvalidCategory
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
