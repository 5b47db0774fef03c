package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/cardvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string  path to the local wallet database
//	-e string  S3-compatible endpoint of the cloud bucket
//	-b string  cloud bucket name
//	-r string  cloud bucket region
//	-i int     online check interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-e", "-b", "-r", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local wallet database")
	fs.StringVar(&cfg.S3Endpoint, "e", cfg.S3Endpoint, "S3-compatible endpoint of the cloud bucket")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "cloud bucket name")
	fs.StringVar(&cfg.S3Region, "r", cfg.S3Region, "cloud bucket region")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
