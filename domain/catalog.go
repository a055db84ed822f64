package domain

type (
	Category string
	Unit     string

	CategoryInfo struct {
		Name            Category `json:"name"`
		NameTh          string   `json:"name_th"`
		NameEn          string   `json:"name_en"`
		Emoji           string   `json:"emoji"`
		BackgroundColor string   `json:"background_color"`
	}

	UnitInfo struct {
		Value   Unit   `json:"value"`
		LabelTh string `json:"label_th"`
		LabelEn string `json:"label_en"`
	}
)

const (
	CategoryFruits     Category = "Fruits"
	CategoryVegetables Category = "Vegetables"
	CategoryDairy      Category = "Dairy"
	CategoryMeat       Category = "Meat"
	CategoryGrains     Category = "Grains"
	CategorySnacks     Category = "Snacks"
)

var Categories = []CategoryInfo{
	{Name: CategoryFruits, NameTh: "ผลไม้", NameEn: "Fruits", Emoji: "🍎", BackgroundColor: "#f7d85dff"},
	{Name: CategoryVegetables, NameTh: "ผัก", NameEn: "Vegetables", Emoji: "🥕", BackgroundColor: "#9fe26fff"},
	{Name: CategoryDairy, NameTh: "นม", NameEn: "Dairy", Emoji: "🥛", BackgroundColor: "#45B7D1"},
	{Name: CategoryMeat, NameTh: "เนื้อสัตว์", NameEn: "Meat", Emoji: "🥩", BackgroundColor: "#b9c4f2ff"},
	{Name: CategoryGrains, NameTh: "เมล็ดพืช", NameEn: "Grains", Emoji: "🍞", BackgroundColor: "#ca9265ff"},
	{Name: CategorySnacks, NameTh: "ขนม", NameEn: "Snacks", Emoji: "🍪", BackgroundColor: "#DDA0DD"},
}

var Units = []UnitInfo{
	{Value: "kg", LabelTh: "กิโลกรัม", LabelEn: "Kilogram"},
	{Value: "g", LabelTh: "กรัม", LabelEn: "Gram"},
	{Value: "mg", LabelTh: "มิลลิกรัม", LabelEn: "Milligram"},
	{Value: "L", LabelTh: "ลิตร", LabelEn: "Liter"},
	{Value: "mL", LabelTh: "มิลลิลิตร", LabelEn: "Milliliter"},
	{Value: "cup", LabelTh: "ถ้วย", LabelEn: "Cup"},
	{Value: "tbsp", LabelTh: "ช้อนโต๊ะ", LabelEn: "Tablespoon"},
	{Value: "tsp", LabelTh: "ช้อนชา", LabelEn: "Teaspoon"},
	{Value: "pcs", LabelTh: "ชิ้น", LabelEn: "Pieces"},
	{Value: "pack", LabelTh: "แพ็ค", LabelEn: "Pack"},
	{Value: "bag", LabelTh: "ถุง", LabelEn: "Bag"},
	{Value: "box", LabelTh: "กล่อง", LabelEn: "Box"},
	{Value: "can", LabelTh: "กระป๋อง", LabelEn: "Can"},
	{Value: "bottle", LabelTh: "ขวด", LabelEn: "Bottle"},
}

func LookupCategory(name string) (CategoryInfo, bool) {
	for _, c := range Categories {
		if string(c.Name) == name {
			return c, true
		}
	}
	return CategoryInfo{}, false
}

func LookupUnit(value string) (UnitInfo, bool) {
	for _, u := range Units {
		if string(u.Value) == value {
			return u, true
		}
	}
	return UnitInfo{}, false
}

func (c CategoryInfo) Label(lang Language) string {
	return lang.Pick(c.NameTh, c.NameEn)
}

func (u UnitInfo) Label(lang Language) string {
	return lang.Pick(u.LabelTh, u.LabelEn)
}
