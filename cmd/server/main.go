package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

var version = "dev"

var CLI struct {
	Version kong.VersionFlag

	Serve        ServeCmd        `cmd:"" help:"Run the HTTP server and the countdown broadcaster." default:"1"`
	Next         NextCmd         `cmd:"" help:"Print the next prayer and the time left."`
	HashPassword HashPasswordCmd `cmd:"" name:"hash-password" help:"Hash an admin password for ADMIN_PASSWORD_HASH."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("baitulaman"),
		kong.Description("Baitul Aman masjid web service"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
