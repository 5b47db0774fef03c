package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/cardvault/internal/wallet/syncx"
)

func (a *App) sync(ctx context.Context) {
	if err := a.manager.ProcessQueuedOperations(ctx); err != nil {
		log.Println(err.Error())
	}
	a.checkConflicts(ctx)
	a.pending(ctx)
}

func (a *App) pending(ctx context.Context) {
	n, err := a.manager.PendingOperationCount(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("Pending operations: %d\n", n)
}

// checkConflicts asks the manager for a local/cloud divergence and, if one
// exists, walks the user through the resolution choice.
func (a *App) checkConflicts(ctx context.Context) {
	data, err := a.manager.CheckForSyncConflicts(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if data == nil {
		return
	}

	fmt.Printf("Sync conflict: %d cards on this device, %d in the cloud.\n",
		data.LocalCount, data.CloudCount)

	answer, err := GetSimpleText(a.reader,
		"Resolve with: replace_with_cloud, merge or keep_local", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	action, err := syncx.ParseAction(answer)
	if err != nil {
		fmt.Println("Unknown action:", answer)
		return
	}

	if err := a.manager.ResolveSyncConflict(ctx, action, data); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Conflict resolved")
}
