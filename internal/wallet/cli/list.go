package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
)

func (a *App) list(ctx context.Context) {
	cards, err := a.manager.LoadCards(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	if len(cards) == 0 {
		fmt.Println("No cards yet")
		return
	}

	for i, c := range cards {
		fav := " "
		if c.IsFavorite {
			fav = "*"
		}
		fmt.Printf("%3d %s %s (%s)\n", i+1, fav, c.Name, c.CodeType)
	}
}

// pick resolves a 1-based index argument against the current collection.
func (a *App) pick(ctx context.Context, args []string) (*models.Card, bool) {
	if len(args) == 0 {
		fmt.Println("Usage: <command> <n> — run 'list' for numbers")
		return nil, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("Not a number:", args[0])
		return nil, false
	}

	cards, err := a.manager.LoadCards(ctx)
	if err != nil {
		log.Println(err.Error())
		return nil, false
	}
	if n < 1 || n > len(cards) {
		fmt.Println("No such card:", n)
		return nil, false
	}
	return &cards[n-1], true
}
