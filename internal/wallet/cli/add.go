package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
)

func (a *App) add(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Card name", os.Stdout)
	if err != nil || name == "" {
		log.Println("card name is required")
		return
	}

	brand, err := GetSimpleText(a.reader, "Brand (empty for custom)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if brand == "" {
		brand = models.BrandCustom
	}

	code, err := GetSimpleText(a.reader, "Code payload", os.Stdout)
	if err != nil || code == "" {
		log.Println("code payload is required")
		return
	}

	color, err := GetSimpleText(a.reader, "Color (hex, e.g. #cc0000)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if color == "" {
		color = "#ffffff"
	}

	card := models.NewCard(name, brand, code, "", color)
	fmt.Printf("Detected code type: %s\n", card.CodeType)

	if err := a.manager.SaveCard(ctx, card, a.isOnline()); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("Saved %s\n", card.Name)
}
