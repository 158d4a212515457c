package runner

import (
	"github.com/projectdiscovery/gologger"
	updateutils "github.com/projectdiscovery/utils/update"
)

var banner = `

  ___ ___  ___ ____  __ __
 (_-</ _ \/ _ '/ _ \ \ \ /
/___/ .__/\_,_/_//_//_\_\
   /_/
`

var version = "v0.1.0"

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tprojectdiscovery.io\n\n")
}

// GetUpdateCallback returns a callback function that updates spanx
func GetUpdateCallback() func() {
	return func() {
		showBanner()
		updateutils.GetUpdateToolCallback("spanx", version)()
	}
}
