package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
)

func (a *App) mode(ctx context.Context, args []string) {
	if len(args) == 0 {
		mode, err := a.manager.StorageMode(ctx)
		if err != nil {
			log.Println(err.Error())
			return
		}
		fmt.Printf("Storage mode: %s\n", mode)
		return
	}

	mode, err := models.ParseStorageMode(args[0])
	if err != nil {
		fmt.Println("Usage: mode [local|cloud]")
		return
	}

	if err := a.manager.SetStorageMode(ctx, mode); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("Switched to %s mode\n", mode)

	if mode == models.StorageModeCloud {
		a.checkConflicts(ctx)
	}
}
