package database

import (
	"fmt"

	"content-provider/models"
)

// SampleCheeses is the initial content of a fresh database
var SampleCheeses = []string{
	"Abbaye de Belloc", "Abbaye du Mont des Cats", "Abertam", "Abondance",
	"Ackawi", "Acorn", "Adelost", "Affidelice au Chablis", "Afuega'l Pitu",
	"Airag", "Airedale", "Aisy Cendre", "Allgauer Emmentaler", "Alverca",
	"Ambert", "American Cheese", "Ami du Chambertin", "Anejo Enchilado",
	"Anneau du Vic-Bilh", "Anthoriro", "Appenzell", "Aragon", "Ardi Gasna",
	"Ardrahan", "Armenian String", "Aromes au Gene de Marc", "Asadero",
	"Asiago", "Aubisque Pyrenees", "Autun", "Avaxtskyr", "Baby Swiss",
	"Babybel", "Baguette Laonnaise", "Bakers", "Baladi", "Balaton",
	"Bandal", "Banon", "Barry's Bay Cheddar", "Basing", "Basket Cheese",
	"Bath Cheese", "Bavarian Bergkase", "Baylough", "Beaufort",
	"Beauvoorde", "Beenleigh Blue", "Beer Cheese", "Bel Paese",
}

// Seed fills an empty cheeses table with SampleCheeses and returns the
// number of rows inserted. A table that already has rows is left alone.
func Seed(repo *Repository) (int, error) {
	count, err := repo.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count cheeses: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	cheeses := make([]models.Cheese, len(SampleCheeses))
	for i, name := range SampleCheeses {
		cheeses[i] = models.Cheese{Name: name}
	}

	ids, err := repo.InsertAll(cheeses)
	if err != nil {
		return 0, fmt.Errorf("failed to seed cheeses: %w", err)
	}
	return len(ids), nil
}
