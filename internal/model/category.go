package model

// Category classifies a menu item.
type Category string

const (
	CategoryBiryani     Category = "Biryani"
	CategoryArabicFood  Category = "Arabic Food"
	CategoryRice        Category = "Rice"
	CategoryKhana       Category = "Khana"
	CategoryPizza       Category = "Pizza"
	CategoryBurger      Category = "Burger"
	CategoryCurrySnacks Category = "Curry & Snacks"
	CategoryChickenItem Category = "Chicken Item"
	CategoryChowmin     Category = "Chowmin"
	CategoryMomo        Category = "Momo"
	CategoryNangloSets  Category = "Nanglo Sets"
	CategoryPasta       Category = "Pasta"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryBiryani,
	CategoryArabicFood,
	CategoryRice,
	CategoryKhana,
	CategoryPizza,
	CategoryBurger,
	CategoryCurrySnacks,
	CategoryChickenItem,
	CategoryChowmin,
	CategoryMomo,
	CategoryNangloSets,
	CategoryPasta,
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
