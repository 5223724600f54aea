package inventory

// Catalog lists the material categories and their subcategories offered
// by the forms.
type Catalog struct {
	Categories    []string            `json:"categories"`
	Subcategories map[string][]string `json:"subcategories"`
}

// CategoryCatalog returns the material category lists used by the temple.
func CategoryCatalog() Catalog {
	return Catalog{
		Categories: []string{
			"Velas",
			"Ervas",
			"Incensos",
			"Óleos Essenciais",
			"Cristais e Pedras",
			"Imagens e Santos",
			"Instrumentos Musicais",
			"Tecidos e Roupas",
			"Bebidas Ritualísticas",
			"Flores",
			"Charutos e Cigarros",
			"Perfumes",
			"Pólvoras e Pemba",
			"Utensílios Diversos",
			"Limpeza do Templo",
			"Outros Materiais",
		},
		Subcategories: map[string][]string{
			"Velas":                 {"Branca", "Vermelha", "Azul", "Amarela", "Verde", "Rosa", "Roxa", "Preta", "Dourada", "Prateada"},
			"Ervas":                 {"Arruda", "Guiné", "Alecrim", "Manjericão", "Espada de São Jorge", "Comigo-ninguém-pode", "Outras"},
			"Incensos":              {"Sândalo", "Mirra", "Benjoim", "Olíbano", "Lavanda", "Rosa", "Outros"},
			"Cristais e Pedras":     {"Quartzo Branco", "Ametista", "Citrino", "Hematita", "Obsidiana", "Outros"},
			"Instrumentos Musicais": {"Atabaque", "Agogô", "Xequerê", "Caxixi", "Outros"},
		},
	}
}
