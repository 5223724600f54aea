package finance

// Catalog lists the fixed transaction categories offered by the forms.
type Catalog struct {
	Revenue []string `json:"revenue"`
	Expense []string `json:"expense"`
}

// CategoryCatalog returns the category lists used by the temple.
func CategoryCatalog() Catalog {
	return Catalog{
		Revenue: []string{
			"Mensalidades",
			"Doações",
			"Eventos e Festivais",
			"Consultas Espirituais",
			"Trabalhos Espirituais",
			"Vendas de Materiais",
			"Outras Receitas",
		},
		Expense: []string{
			"Materiais Religiosos",
			"Manutenção do Templo",
			"Energia Elétrica",
			"Água",
			"Internet/Telefone",
			"Limpeza",
			"Alimentação (Eventos)",
			"Transporte",
			"Documentação",
			"Outras Despesas",
		},
	}
}
