package cards

import "fmt"

// Card e' un valore immutabile: viene copiato tra pool e mani, mai condiviso.
type Card struct {
	ID      int    `json:"id,omitempty"`
	Name    string `json:"nome"`
	Attack  int    `json:"ataque"`
	Defense int    `json:"defesa"`
}

// String rende la carta nel formato usato da listar/mao.
func (c Card) String() string {
	return fmt.Sprintf("%s (ATK %d / DEF %d)", c.Name, c.Attack, c.Defense)
}

// Totals somma attacco e difesa di una mano.
func Totals(hand []Card) (attack, defense int) {
	for _, card := range hand {
		attack += card.Attack
		defense += card.Defense
	}
	return attack, defense
}
