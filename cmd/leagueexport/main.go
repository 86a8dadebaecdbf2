package main

import (
	"leagueexport/cmd/leagueexport/commands"
	"leagueexport/lib/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()
	commands.ExecuteContext(ctx)
}
