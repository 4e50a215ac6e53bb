package util

import (
	"fmt"
	"strings"
)

// Справочники синтетических данных. Содержимое фиксировано:
// генерация детерминирована относительно порядка элементов.

var firstNames = []string{
	"Alice", "Brian", "Clara", "Daniel", "Elena", "Felix", "Grace", "Henry",
	"Irene", "James", "Karen", "Liam", "Maria", "Nathan", "Olivia", "Peter",
	"Quinn", "Rachel", "Samuel", "Teresa", "Victor", "Wendy", "Oscar", "Diana",
}

var lastNames = []string{
	"Anderson", "Brooks", "Carter", "Dawson", "Ellis", "Foster", "Garcia", "Hayes",
	"Iverson", "Jordan", "Keller", "Lawson", "Mitchell", "Novak", "Olsen", "Parker",
	"Quintero", "Reyes", "Sawyer", "Turner", "Vargas", "Walsh", "Young", "Zimmer",
}

var emailDomains = []string{
	"gmail.com", "yahoo.com", "outlook.com", "icloud.com", "protonmail.com",
}

var cities = []string{
	"Springfield", "Riverton", "Oakdale", "Maplewood", "Brookfield", "Fairview",
	"Lakeside", "Hillcrest", "Greenville", "Ashford", "Milton", "Clayton",
	"Weston", "Norwood", "Kingsport", "Elmhurst",
}

var suppliers = []string{
	"Northwind Trading", "Atlas Distribution", "Prime Source Ltd", "Cedar Valley Supply",
	"Ironclad Goods", "BlueRiver Wholesale", "Summit Partners", "Orchid Imports",
	"Pacific Crest Co", "Redwood Logistics", "Sterling Merchants", "Harbor Line Group",
}

var productAdjectives = []string{
	"Ultra", "Pro", "Classic", "Compact", "Premium", "Eco", "Smart", "Sport",
	"Deluxe", "Prime", "Max", "Lite", "Urban", "Royal", "Active", "Fresh",
}

var productNouns = map[string][]string{
	"Electronics": {"Phone", "Laptop", "Tablet", "Headphones", "Charger", "Speaker"},
	"Clothing":    {"Jacket", "T-Shirt", "Sneakers", "Hoodie", "Jeans", "Cap"},
	"Home":        {"Blender", "Lamp", "Sofa", "Grill", "Kettle", "Rug"},
	"Sports":      {"Dumbbell", "Treadmill", "Goggles", "Helmet", "Yoga Mat", "Racket"},
	"Books":       {"Novel", "Guide", "Handbook", "Atlas", "Cookbook", "Biography"},
	"Toys":        {"Puzzle", "Console", "Scooter", "Plush Bear", "Blocks", "Drone"},
}

var defaultNouns = []string{"Bundle", "Set", "Kit", "Box"}

// FullName возвращает синтетическое имя клиента
func FullName(r *Rand) string {
	return r.PickString(firstNames) + " " + r.PickString(lastNames)
}

// Email строит адрес из имени клиента: строчные буквы, точка вместо
// пробела, числовой суффикс против коллизий между тёзками.
func Email(r *Rand, name string) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return fmt.Sprintf("%s%d@%s", local, r.UniformInt(1, 100), r.PickString(emailDomains))
}

// City возвращает город клиента
func City(r *Rand) string {
	return r.PickString(cities)
}

// Supplier возвращает название компании-поставщика
func Supplier(r *Rand) string {
	return r.PickString(suppliers)
}

// ProductName строит название товара по категории: прилагательное,
// существительное категории и номер модели. Для неизвестной категории
// используется общий список существительных.
func ProductName(r *Rand, category string) string {
	nouns, ok := productNouns[category]
	if !ok {
		nouns = defaultNouns
	}
	return fmt.Sprintf("%s %s %d", r.PickString(productAdjectives), r.PickString(nouns), r.UniformInt(100, 1000))
}
