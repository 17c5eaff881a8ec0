package pager

import (
	"log"
	"os"
)

var debugEnabled = os.Getenv("XPAGEVIEW_DEBUG") != ""

func debugf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	log.Printf("[pager] "+format, args...)
}
