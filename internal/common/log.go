package common

import "log"

func INFO(format string, args ...any) {
	log.Printf("[INFO] "+format, args...)
}
func WARN(format string, args ...any) {
	log.Printf("[WARN] "+format, args...)
}
func FAIL(format string, args ...any) {
	log.Printf("[FAIL] "+format, args...)
}
