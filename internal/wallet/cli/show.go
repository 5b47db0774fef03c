package cli

import (
	"context"
	"fmt"
	"log"
	"time"
)

func (a *App) show(ctx context.Context, args []string) {
	card, ok := a.pick(ctx, args)
	if !ok {
		return
	}

	fmt.Printf("Name:   %s\n", card.Name)
	fmt.Printf("Brand:  %s\n", card.Brand)
	fmt.Printf("Code:   %s (%s)\n", card.Code, card.CodeType)
	fmt.Printf("Color:  %s\n", card.Color)
	fmt.Printf("Added:  %s\n", time.UnixMilli(card.DateAdded).Format(time.DateOnly))
	if card.Notes != "" {
		fmt.Printf("Notes:  %s\n", card.Notes)
	}

	// Viewing counts as usage.
	card.Touch()
	if err := a.manager.UpdateCard(ctx, *card, a.isOnline()); err != nil {
		log.Println(err.Error())
	}
}
