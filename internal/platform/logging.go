package platform

import "log"

// LogError logs err with a short context prefix. Nil errors are ignored.
func LogError(context string, err error) {
	if err == nil {
		return
	}
	log.Printf("%s: %v", context, err)
}
