package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) delete(ctx context.Context, args []string) {
	card, ok := a.pick(ctx, args)
	if !ok {
		return
	}

	if err := a.manager.DeleteCard(ctx, card.Id, a.isOnline()); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("Deleted %s\n", card.Name)
}

func (a *App) favorite(ctx context.Context, args []string) {
	card, ok := a.pick(ctx, args)
	if !ok {
		return
	}

	fav, err := a.manager.ToggleFavorite(ctx, card.Id, a.isOnline())
	if err != nil {
		log.Println(err.Error())
		return
	}
	if fav {
		fmt.Printf("%s marked as favorite\n", card.Name)
	} else {
		fmt.Printf("%s is no longer a favorite\n", card.Name)
	}
}
