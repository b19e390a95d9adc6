package instance

import "os"

// GetID returns the process instance identifier or a default value. Platform
// dyno names take precedence over INSTANCE_ID.
func GetID() string {
	for _, key := range []string{"DYNO", "INSTANCE_ID"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
