package cards

import "fmt"

// StarterDeck ritorna il mazzo da 20 carte della politica "id".
func StarterDeck() []Card {
	base := []Card{
		{Name: "Dragão", Attack: 8, Defense: 5},
		{Name: "Mago", Attack: 6, Defense: 4},
		{Name: "Guerreiro", Attack: 7, Defense: 6},
		{Name: "Elfo", Attack: 5, Defense: 7},
	}
	deck := make([]Card, 0, 20)
	for i := 0; i < 20; i++ {
		card := base[i%len(base)]
		card.ID = i + 1
		deck = append(deck, card)
	}
	return deck
}

// RareCards ritorna le 15 rare uniche (id 101..115).
func RareCards() []Card {
	return []Card{
		{ID: 101, Name: "Dragão Lendário", Attack: 14, Defense: 12},
		{ID: 102, Name: "Fênix de Fogo", Attack: 13, Defense: 9},
		{ID: 103, Name: "Mago Supremo", Attack: 12, Defense: 11},
		{ID: 104, Name: "Titã de Pedra", Attack: 10, Defense: 15},
		{ID: 105, Name: "Serpente Marinha", Attack: 11, Defense: 10},
		{ID: 106, Name: "Cavaleiro Negro", Attack: 13, Defense: 11},
		{ID: 107, Name: "Anjo da Guarda", Attack: 9, Defense: 14},
		{ID: 108, Name: "Demônio Ancestral", Attack: 15, Defense: 9},
		{ID: 109, Name: "Dragão de Gelo", Attack: 12, Defense: 13},
		{ID: 110, Name: "Fada Suprema", Attack: 10, Defense: 12},
		{ID: 111, Name: "Besta Colossal", Attack: 14, Defense: 10},
		{ID: 112, Name: "Samurai Fantasma", Attack: 13, Defense: 10},
		{ID: 113, Name: "Guardião Celestial", Attack: 11, Defense: 14},
		{ID: 114, Name: "Minotauro Real", Attack: 12, Defense: 12},
		{ID: 115, Name: "Fera Mística", Attack: 13, Defense: 13},
	}
}

// CommonCards genera le 30 comuni (id 1..30): attacco 3..9, difesa 2..8.
func CommonCards(rng Random) []Card {
	commons := make([]Card, 0, 30)
	for i := 1; i <= 30; i++ {
		commons = append(commons, Card{
			ID:      i,
			Name:    fmt.Sprintf("Comum %d", i),
			Attack:  3 + rng.IntN(7),
			Defense: 2 + rng.IntN(7),
		})
	}
	return commons
}
