package prompt

import (
	"Ginraidee/domain"
	"fmt"
)

type persona struct {
	th, en string
}

var (
	generatePersona = persona{
		th: "คุณเป็นผู้ช่วยทำอาหารที่เชี่ยวชาญในการแนะนำเมนูอาหาร",
		en: "You are a helpful cooking assistant that suggests recipes based on available ingredients.",
	}
	suggestPersona = persona{
		th: "คุณเป็นผู้ช่วยทำอาหารที่ช่วยแนะนำสูตรอาหารเพื่อลดการทิ้งอาหาร",
		en: "You are a helpful cooking assistant focused on reducing food waste.",
	}
)

func (p persona) pick(lang domain.Language) string {
	return lang.Pick(p.th, p.en)
}

func cravingPrompt(craving, ingredients string, lang domain.Language) string {
	if lang == domain.LanguageThai {
		return fmt.Sprintf("ฉันอยากทาน%s\n\nวัตถุดิบที่มี: %s\n\nช่วยแนะนำสูตรอาหารที่ใช้วัตถุดิบเหล่านี้ให้หน่อย", craving, ingredients)
	}
	return fmt.Sprintf("I'm craving %s\n\nAvailable ingredients: %s\n\nPlease suggest a recipe using these ingredients.", craving, ingredients)
}

func inventoryPrompt(ingredients string, lang domain.Language) string {
	if lang == domain.LanguageThai {
		return fmt.Sprintf("วัตถุดิบที่มี: %s\n\nช่วยแนะนำสูตรอาหารอร่อยๆ ที่ใช้วัตถุดิบเหล่านี้ให้หน่อย", ingredients)
	}
	return fmt.Sprintf("Available ingredients: %s\n\nPlease suggest a delicious recipe using these ingredients.", ingredients)
}

func expiringPrompt(ingredients string, lang domain.Language) string {
	if lang == domain.LanguageThai {
		return fmt.Sprintf("วัตถุดิบเหล่านี้กำลังจะหมดอายุ: %s\n\nช่วยแนะนำสูตรอาหารที่ใช้วัตถุดิบเหล่านี้ก่อนที่จะหมดอายุ", ingredients)
	}
	return fmt.Sprintf("These ingredients are expiring soon: %s\n\nPlease suggest recipes to use them before they expire.", ingredients)
}

func fallbackText(title, bullets string, lang domain.Language) string {
	if lang == domain.LanguageThai {
		return fmt.Sprintf("สูตร: %s\n\nวัตถุดิบ:\n%s\n\nขั้นตอน:\n1. เตรียมวัตถุดิบทั้งหมด\n2. ผสมวัตถุดิบเข้าด้วยกัน\n3. ปรุงให้สุก\n4. เสิร์ฟ\n\nขอให้อร่อยกับมื้อนี้! 🍽️", title, bullets)
	}
	return fmt.Sprintf("Recipe: %s\n\nIngredients:\n%s\n\nSteps:\n1. Prepare all ingredients\n2. Mix everything together\n3. Cook until done\n4. Serve\n\nEnjoy your meal! 🍽️", title, bullets)
}

func fallbackTitle(req GenerationRequest) string {
	switch {
	case req.Craving != "":
		return req.Craving
	case req.Variant == domain.RecipeVariantExpiring:
		return req.Language.Pick("เมนูใช้วัตถุดิบใกล้หมดอายุ", "Use-It-Up Meal")
	default:
		return req.Language.Pick("อาหารอร่อย", "Delicious Meal")
	}
}

// Placeholder is the text used when the provider answered with nothing.
func Placeholder(variant domain.RecipeVariant, lang domain.Language) string {
	if variant == domain.RecipeVariantExpiring {
		return lang.Pick("ไม่มีคำแนะนำ", "No suggestions generated")
	}
	return lang.Pick("ไม่มีสูตรอาหารที่สร้างขึ้น", "No recipe generated")
}

// NoExpiringMessage is shown when nothing falls inside the expiring window.
func NoExpiringMessage(lang domain.Language) string {
	return lang.Pick("ไม่มีวัตถุดิบที่ใกล้หมดอายุ", "No expiring ingredients found")
}
