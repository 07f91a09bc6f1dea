// Command initdata_check validates a raw init data payload offline and
// prints it decoded.
//
//	initdata_check validate --bot-token $BOT_TOKEN 'query_id=...&hash=...'
//	pbpaste | initdata_check inspect
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
